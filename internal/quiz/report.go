package quiz

import (
	"fmt"
	"strings"
)

// Report is a resolved record with its catalog descriptions attached.
type Report struct {
	Result       ResultRecord
	Recommended  Program
	Alternatives []Program
}

// Report cross-references a result with the program catalog.
func (c *Content) Report(r ResultRecord) Report {
	rep := Report{Result: r, Recommended: c.program(r.Recommended)}
	for _, name := range r.Alternatives {
		rep.Alternatives = append(rep.Alternatives, c.program(name))
	}
	return rep
}

func (c *Content) program(name string) Program {
	desc, _ := c.Describe(name)
	return Program{Name: name, Description: desc}
}

// Markdown renders the report for glamour or plain-text front ends.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Result.Title)
	fmt.Fprintf(&b, "**Recommended program:** %s\n\n", r.Result.Recommended)
	if r.Result.Rationale != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Result.Rationale)
	}
	if r.Recommended.Description != "" {
		fmt.Fprintf(&b, "> %s\n\n", r.Recommended.Description)
	}
	if len(r.Alternatives) > 0 {
		b.WriteString("## Also consider\n\n")
		for _, alt := range r.Alternatives {
			fmt.Fprintf(&b, "- **%s**: %s\n", alt.Name, alt.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// PlainText renders the report without Markdown markup, for chat replies.
func (r Report) PlainText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", r.Result.Title)
	fmt.Fprintf(&b, "Recommended program: %s\n", r.Result.Recommended)
	if r.Result.Rationale != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Result.Rationale)
	}
	if len(r.Alternatives) > 0 {
		b.WriteString("\nAlso consider:\n")
		for _, alt := range r.Alternatives {
			fmt.Fprintf(&b, "• %s: %s\n", alt.Name, alt.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
