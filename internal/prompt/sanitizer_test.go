package prompt

import "testing"

func TestStripPreamble(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain answer untouched", "SkyRunner has 150 views.", "SkyRunner has 150 views."},
		{"empty untouched", "", ""},
		{
			"data provided lead-in",
			"Based on the data you've provided, SkyRunner is at 40%.",
			"SkyRunner is at 40%.",
		},
		{
			"case insensitive",
			"ACCORDING TO THE INFORMATION: try Godot.",
			"try Godot.",
		},
		{
			"as per the data",
			"As per the data - there are two completed games.",
			"there are two completed games.",
		},
		{
			"note prefix",
			"Note: no sales right now.",
			"no sales right now.",
		},
		{
			"leading conjunction after lead-in",
			"From the provided information, so, the answer is 23.",
			"the answer is 23.",
		},
		{
			"leading punctuation",
			"; therefore, yes.",
			"yes.",
		},
		{
			"whitespace trimmed",
			"   hello   ",
			"hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripPreamble(tt.in); got != tt.want {
				t.Fatalf("StripPreamble(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripPreamble_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Based on the data you've provided, the game has 23 views.",
		"Note: thus, nothing to report.",
		"A clean answer.",
		"",
	}

	for _, in := range inputs {
		once := StripPreamble(in)
		twice := StripPreamble(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
