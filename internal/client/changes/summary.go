package changes

import (
	"fmt"
	"strings"
)

// DefaultLimit is the most entries a confirmation lists one by one.
const DefaultLimit = 5

// Summarize renders the confirmation text for r: every entry when there are
// at most limit of them, otherwise only the count. A limit below 1 uses
// DefaultLimit.
func Summarize(r Record, limit int) string {
	if limit < 1 {
		limit = DefaultLimit
	}
	switch {
	case r.Empty():
		return "No changes detected."
	case len(r) > limit:
		return fmt.Sprintf("%d changes will be saved.", len(r))
	}

	var b strings.Builder
	b.WriteString("The following changes will be saved:")
	for _, c := range r {
		b.WriteString("\n- ")
		b.WriteString(c)
	}
	return b.String()
}
