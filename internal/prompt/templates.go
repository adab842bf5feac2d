// Package prompt builds the text payload sent to the inference backend
// from role, profile, and conversation state, and cleans up the model's
// output afterwards.
package prompt

import (
	"fmt"
	"strings"

	"github.com/flemzord/chacha/internal/profile"
)

// Fixed strings the templates instruct the model to emit verbatim.
// Tests and downstream consumers rely on these exact values.
const (
	// AssistantName is the name the assistant gives when asked.
	AssistantName = "ChaCha"

	// FallbackAnswer is the exact reply for unanswerable questions.
	FallbackAnswer = "Can I help you with anything else?"

	// NoSalesAnswer is the exact reply when no sales are available.
	NoSalesAnswer = "Right now there are no sales available."
)

// Placeholders rendered when a profile field is missing. Never empty
// strings — the templates must read naturally without the data.
const (
	placeholderGame     = "your game"
	placeholderProgress = "in progress"
	placeholderFavGame  = "your favourite game"
	placeholderBudget   = "your budget"
	placeholderNone     = "none"
)

const contextOnlyRule = `IMPORTANT: You MUST NOT answer the QUESTION unless the CONTEXT contains the answer. If the CONTEXT does not contain information to answer the QUESTION, respond exactly with: "` + FallbackAnswer + `" Do not use outside knowledge, databases, APIs, or external sources. Only use the CONTEXT.`

const noSalesRule = `If the user asks about sales events and there are no current or upcoming sales available, respond exactly with: "` + NoSalesAnswer + `"`

const fallbackRule = `If the CONTEXT does not contain information to answer the QUESTION, respond exactly with: "` + FallbackAnswer + `"`

// viewsNudge invites developers to ask for their game statistics,
// served by the game/views endpoint.
const viewsNudge = `Would you like to see how many people have viewed your game? You can ask me to show your game statistics.`

const anonymousTemplate = `You are a Video Game Assistant. Use ONLY the CONTEXT to answer the QUESTION. Do not provide any information not in the CONTEXT. If the QUESTION cannot be answered using the CONTEXT, say exactly: "` + FallbackAnswer + `"`

// RolePrompt selects and fills the role template for the given profile.
// A nil profile selects the anonymous template.
func RolePrompt(p profile.Profile) string {
	switch prof := p.(type) {
	case profile.Developer:
		return developerPrompt(prof)
	case profile.Buyer:
		return buyerPrompt(prof)
	default:
		return anonymousTemplate
	}
}

func developerPrompt(d profile.Developer) string {
	game := d.ActiveGame
	if game == "" {
		game = placeholderGame
	}
	progress := d.Progress
	if progress == "" {
		progress = placeholderProgress
	}
	completed := placeholderNone
	if len(d.CompletedGames) > 0 {
		completed = strings.Join(d.CompletedGames, ", ")
	}

	var b strings.Builder
	b.WriteString(contextOnlyRule)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "If the user asks for your name, respond exactly with: %q.\n", AssistantName)
	fmt.Fprintf(&b, "You are a game development assistant providing factual insights based on the CONTEXT. The user is working on %s (%s complete). They've previously completed: %s.\n\n", game, progress, completed)
	b.WriteString(`STYLE: By default, provide concise, factual insights based on the CONTEXT (2-4 sentences). Avoid speculation. If the user requests a list, table, or detailed information (e.g., "list 10 games" or "show current sales"), provide the full list or table as requested, including links or details if available. Ask a follow-up question only if it helps clarify or narrow down the issue.`)
	b.WriteString("\n\n")
	b.WriteString(noSalesRule)
	b.WriteString("\n\n")
	b.WriteString(fallbackRule)
	b.WriteString("\n\n")
	b.WriteString(`SCOPE: Game design, programming, engines (Unity/Unreal/Godot), art, audio, debugging, optimization, launch, game sales, and platform promotions (e.g., Steam, Epic Games).`)
	b.WriteString("\n\n")
	b.WriteString(viewsNudge)
	return b.String()
}

func buyerPrompt(p profile.Buyer) string {
	fav := p.FavouriteGame
	if fav == "" {
		fav = placeholderFavGame
	}
	budget := p.Budget
	if budget == "" {
		budget = placeholderBudget
	}
	completed := placeholderNone
	if len(p.CompletedGames) > 0 {
		completed = strings.Join(p.CompletedGames, ", ")
	}

	var b strings.Builder
	b.WriteString(contextOnlyRule)
	b.WriteString("\n")
	fmt.Fprintf(&b, "You are a gaming assistant providing factual recommendations based on the CONTEXT. The user's favourite game is %s, their budget is $%s, and they've completed: %s.\n\n", fav, budget, completed)
	b.WriteString(`STYLE: Provide concise, factual recommendations based on the CONTEXT. Avoid speculation. Ask a follow-up question to refine preferences.`)
	b.WriteString("\n\n")
	b.WriteString(noSalesRule)
	b.WriteString("\n\n")
	b.WriteString(fallbackRule)
	b.WriteString("\n\n")
	b.WriteString(`SCOPE: Game recommendations, sales, genres, platforms, reviews, deals.`)
	return b.String()
}
