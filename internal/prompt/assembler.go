package prompt

import "strings"

// Assemble concatenates the role template, the user-profile summary, the
// conversation context, and the question into the final prompt string.
// Section order matters for behavioral compatibility with the deployed
// templates, not for correctness.
func Assemble(rolePrompt, profileContext, transcriptContext, question string) string {
	var b strings.Builder
	b.WriteString(rolePrompt)
	b.WriteString("\n\nUSER_PROFILE:\n")
	b.WriteString(profileContext)
	b.WriteString("\n\nCONTEXT:\n")
	b.WriteString(transcriptContext)
	b.WriteString("\n\nQUESTION: ")
	b.WriteString(question)
	b.WriteString("\n")
	return b.String()
}
