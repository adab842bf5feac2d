// Package session provides per-session conversation transcripts and their
// rendering into the CONTEXT block of assembled prompts.
package session

import "strings"

// Role identifies who produced a turn.
type Role string

// Transcript roles.
const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one entry in a session transcript. Insertion order is significant:
// it defines the conversational context ordering.
type Turn struct {
	Role    Role
	Content string
}

// Store manages per-session ordered transcripts.
// Implementations must be safe for concurrent use.
//
// Transcripts grow without bound for the process lifetime; nothing evicts
// or truncates them. Purge exists for administrative use only.
type Store interface {
	// Append adds a turn to the end of the session's transcript.
	Append(sessionID string, turn Turn) error

	// Turns returns the session's transcript in insertion order.
	// An unknown session returns an empty transcript, not an error.
	Turns(sessionID string) ([]Turn, error)

	// Len returns the number of turns recorded for a session.
	Len(sessionID string) (int, error)

	// Sessions returns the number of sessions with at least one turn.
	Sessions() int

	// Purge removes a session's transcript entirely.
	Purge(sessionID string) error
}

// RenderContext renders turns as alternating "You: …" / "Bot: …" lines
// joined by newlines, in insertion order.
func RenderContext(turns []Turn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		if t.Role == RoleUser {
			b.WriteString("You: ")
		} else {
			b.WriteString("Bot: ")
		}
		b.WriteString(t.Content)
	}
	return b.String()
}
