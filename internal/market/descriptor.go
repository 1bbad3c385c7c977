package market

import (
	"fmt"
	"strconv"
)

// Descriptor identifies one resolved market: the slug the operator asked
// for, the question text discovered during resolution, and the CLOB token
// IDs to subscribe with. It is immutable for the session's lifetime.
type Descriptor struct {
	Slug     string   // Operator-supplied market or event slug
	Question string   // Display question ("" when the descriptor had none)
	AssetIDs []string // Ordered, deduplicated CLOB token IDs
	Outcomes []string // Outcome labels, index-aligned with AssetIDs
}

// OutcomeLabel returns the outcome label aligned with token index i, or a
// positional placeholder when the descriptor carried fewer labels.
func (d *Descriptor) OutcomeLabel(i int) string {
	if i >= 0 && i < len(d.Outcomes) {
		return d.Outcomes[i]
	}
	return "outcome_" + strconv.Itoa(i)
}

// Validate reports whether the descriptor can start a session.
func (d *Descriptor) Validate() error {
	if d.Slug == "" {
		return fmt.Errorf("descriptor has no slug")
	}
	if len(d.AssetIDs) == 0 {
		return fmt.Errorf("descriptor for %q has no token IDs", d.Slug)
	}
	return nil
}
