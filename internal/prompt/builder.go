// Package prompt renders decision prompts with an embedded schema contract.
//
// Every prompt has four ordered parts: the JSON schema the oracle must
// produce, labeled context sections describing the situation, the task with
// its guidelines, and an output-rules block demanding a single raw JSON
// object. Building is pure: identical input always yields an identical
// prompt string.
package prompt

import (
	"fmt"
	"strings"

	"github.com/hugo-ops/hugo/internal/schema"
)

// Section is one labeled block of context data embedded in a prompt.
type Section struct {
	Title string
	Lines []string
}

// Line formats a labeled value as a section line.
func Line(label string, value any) string {
	return fmt.Sprintf("%s: %v", label, value)
}

// Input carries everything needed to render one prompt.
type Input struct {
	Schema     schema.Schema
	Sections   []Section
	Task       string
	Guidelines []string
}

// outputRules is the closing contract block of every prompt. The pipeline
// still tolerates fenced responses on the read side; the rules exist to
// make compliance the common case, not to be relied on.
const outputRules = `Respond with VALID JSON ONLY.
Do NOT include explanations, markdown, comments, or extra text.
If a value cannot be determined, use null.
If a list cannot be determined, use [].
Do NOT include code blocks or backticks.
Output a single valid JSON object and nothing else.`

// Build renders a complete prompt from the input. It has no side effects
// and consults no state outside its argument.
func Build(in Input) string {
	var b strings.Builder

	b.WriteString("=== JSON SCHEMA (RESPOND WITH THIS STRUCTURE ONLY) ===\n")
	b.WriteString(in.Schema.Render())
	b.WriteString("\n")

	for _, s := range in.Sections {
		b.WriteString("\n=== ")
		b.WriteString(strings.ToUpper(s.Title))
		b.WriteString(" ===\n")
		if len(s.Lines) == 0 {
			b.WriteString("No data available\n")
			continue
		}
		for _, line := range s.Lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n=== TASK ===\n")
	b.WriteString(strings.TrimSpace(in.Task))
	b.WriteString("\n")

	if len(in.Guidelines) > 0 {
		b.WriteString("\nGuidelines:\n")
		for _, g := range in.Guidelines {
			b.WriteString("- ")
			b.WriteString(g)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n=== OUTPUT RULES ===\n")
	b.WriteString(outputRules)

	return b.String()
}
