package core

import (
	"context"
	"errors"
	"testing"
)

// lifecycleModule records Start/Stop calls in a shared event log.
type lifecycleModule struct {
	id       ModuleID
	events   *[]string
	startErr error
}

func (m *lifecycleModule) ModuleInfo() ModuleInfo {
	return ModuleInfo{ID: m.id, New: func() Module { return m }}
}

func (m *lifecycleModule) Start() error {
	if m.startErr != nil {
		return m.startErr
	}
	*m.events = append(*m.events, "start:"+string(m.id))
	return nil
}

func (m *lifecycleModule) Stop(_ context.Context) error {
	*m.events = append(*m.events, "stop:"+string(m.id))
	return nil
}

func TestApp_StartStopOrder(t *testing.T) {
	var events []string

	app := NewApp(NewAppContext(nil, "/data"))
	app.AppendModule("first", &lifecycleModule{id: "first", events: &events})
	app.AppendModule("second", &lifecycleModule{id: "second", events: &events})

	if err := app.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app.Stop()

	want := []string{"start:first", "start:second", "stop:second", "stop:first"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestApp_StartFailureStopsStartedModules(t *testing.T) {
	var events []string

	app := NewApp(NewAppContext(nil, "/data"))
	app.AppendModule("first", &lifecycleModule{id: "first", events: &events})
	app.AppendModule("broken", &lifecycleModule{id: "broken", events: &events, startErr: errors.New("boom")})

	if err := app.Start(); err == nil {
		t.Fatal("expected error when a module fails to start")
	}

	want := []string{"start:first", "stop:first"}
	if len(events) != len(want) || events[0] != want[0] || events[1] != want[1] {
		t.Fatalf("events = %v, want %v", events, want)
	}
}

func TestApp_StopIsIdempotent(t *testing.T) {
	var events []string

	app := NewApp(NewAppContext(nil, "/data"))
	app.AppendModule("only", &lifecycleModule{id: "only", events: &events})

	if err := app.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	app.Stop()
	app.Stop()

	if len(events) != 2 {
		t.Fatalf("events = %v, want one start and one stop", events)
	}
}

func TestApp_Module(t *testing.T) {
	var events []string

	app := NewApp(NewAppContext(nil, "/data"))
	app.AppendModule("only", &lifecycleModule{id: "only", events: &events})

	if _, ok := app.Module("only"); !ok {
		t.Error("expected to find appended module")
	}
	if _, ok := app.Module("missing"); ok {
		t.Error("did not expect to find unknown module")
	}
}
