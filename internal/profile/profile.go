// Package profile models the platform's read-only user profiles.
// Two roles exist: developers working on a game, and buyers shopping for
// one. A user without a profile is treated as anonymous, which is a valid
// state — lookups never fail the chat pipeline.
package profile

import (
	"fmt"
	"strings"
)

// NoContext is rendered when no profile exists for a user.
const NoContext = "No context available for the given user."

// ViewStats holds a developer's game view counters.
type ViewStats struct {
	Yesterday int `yaml:"yesterday" json:"yesterday"`
	Last7Days int `yaml:"last_7_days" json:"last_7_days"`
}

// Profile is the sealed set of role variants. Each variant carries only
// the fields relevant to its role.
type Profile interface {
	// Context renders the USER_PROFILE summary block for prompt assembly.
	Context() string

	sealed()
}

// Developer is the profile of a user building a game on the platform.
type Developer struct {
	ActiveGame     string
	Progress       string
	CompletedGames []string
	Views          ViewStats
}

// Buyer is the profile of a user shopping on the platform.
type Buyer struct {
	FavouriteGame  string
	Budget         string
	CompletedGames []string
}

func (Developer) sealed() {}
func (Buyer) sealed()     {}

// Context implements Profile.
func (d Developer) Context() string {
	var b strings.Builder
	b.WriteString("Developer Profile:\n")
	fmt.Fprintf(&b, "- Active Game: %s\n", orUnknown(d.ActiveGame))
	fmt.Fprintf(&b, "- Progress: %s\n", orUnknown(d.Progress))
	fmt.Fprintf(&b, "- Completed Games: %s\n", joinedOrNone(d.CompletedGames))
	return b.String()
}

// Context implements Profile.
func (p Buyer) Context() string {
	var b strings.Builder
	b.WriteString("Buyer Profile:\n")
	fmt.Fprintf(&b, "- Favourite Game: %s\n", orUnknown(p.FavouriteGame))
	fmt.Fprintf(&b, "- Budget: $%s\n", orUnknown(p.Budget))
	fmt.Fprintf(&b, "- Completed Games: %s\n", joinedOrNone(p.CompletedGames))
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func joinedOrNone(games []string) string {
	if len(games) == 0 {
		return "None"
	}
	return strings.Join(games, ", ")
}
