package profile

import (
	"strings"
	"testing"
)

func TestDeveloperContext(t *testing.T) {
	t.Parallel()

	d := Developer{
		ActiveGame:     "SkyRunner",
		Progress:       "40%",
		CompletedGames: []string{"StarQuest", "MoonLander"},
	}

	got := d.Context()
	want := "Developer Profile:\n" +
		"- Active Game: SkyRunner\n" +
		"- Progress: 40%\n" +
		"- Completed Games: StarQuest, MoonLander\n"
	if got != want {
		t.Fatalf("Context() = %q, want %q", got, want)
	}
}

func TestBuyerContext(t *testing.T) {
	t.Parallel()

	b := Buyer{
		FavouriteGame:  "Call of Duty",
		Budget:         "900",
		CompletedGames: []string{"Indie Cat", "Space Explorer"},
	}

	got := b.Context()
	if !strings.Contains(got, "Buyer Profile:") {
		t.Fatalf("missing header: %q", got)
	}
	if !strings.Contains(got, "- Budget: $900\n") {
		t.Fatalf("missing budget line: %q", got)
	}
}

func TestContextPlaceholders(t *testing.T) {
	t.Parallel()

	got := Developer{}.Context()
	if !strings.Contains(got, "- Active Game: Unknown") {
		t.Fatalf("empty field should render Unknown, got %q", got)
	}
	if !strings.Contains(got, "- Completed Games: None") {
		t.Fatalf("empty list should render None, got %q", got)
	}
}

func TestFromEntries(t *testing.T) {
	t.Parallel()

	store, err := FromEntries(map[string]Entry{
		"dev_user": {
			Role:           "developer",
			ActiveGame:     "SkyRunner",
			Progress:       "40%",
			CompletedGames: []string{"StarQuest"},
			Views:          &ViewStats{Yesterday: 23, Last7Days: 150},
		},
		"buyer_1": {
			Role:          "buyer",
			FavouriteGame: "Call of Duty",
			Budget:        "900",
		},
	})
	if err != nil {
		t.Fatalf("FromEntries: %v", err)
	}

	p, ok := store.Lookup("dev_user")
	if !ok {
		t.Fatal("dev_user not found")
	}
	dev, ok := p.(Developer)
	if !ok {
		t.Fatalf("dev_user is %T, want Developer", p)
	}
	if dev.Views.Last7Days != 150 {
		t.Fatalf("Views.Last7Days = %d, want 150", dev.Views.Last7Days)
	}

	if _, ok := store.Lookup("nobody"); ok {
		t.Fatal("unknown user should not resolve")
	}
}

func TestFromEntries_RejectsBadEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry Entry
	}{
		{"unknown role", Entry{Role: "admin"}},
		{"developer with buyer fields", Entry{Role: "developer", Budget: "10"}},
		{"buyer with developer fields", Entry{Role: "buyer", ActiveGame: "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := FromEntries(map[string]Entry{"u": tt.entry}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
