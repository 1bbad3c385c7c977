package gamma

import (
	"github.com/clobwatch/polymarket-data/internal/market"
	"github.com/clobwatch/polymarket-data/internal/token"
)

// TokenIDs returns the market's CLOB token identifiers, preferring the
// plural clobTokenIds field and falling back to the legacy singular form.
// The result is ordered and deduplicated, first occurrence winning.
func (m *Market) TokenIDs() []string {
	if ids := token.NormalizeJSON(m.ClobTokenIDs); len(ids) > 0 {
		return ids
	}
	return token.NormalizeJSON(m.ClobTokenID)
}

// OutcomeLabels returns the market's outcome names. Labels are positional,
// index-aligned with TokenIDs, so duplicates are preserved.
func (m *Market) OutcomeLabels() []string {
	return token.FlattenJSON(m.Outcomes)
}

// Usable reports whether the market exposes at least one CLOB token ID.
func (m *Market) Usable() bool {
	return len(m.TokenIDs()) > 0
}

// Descriptor converts the market into its resolved subscription form.
// slug is the operator-supplied slug, which may name an event rather than
// this market directly.
func (m *Market) Descriptor(slug string) *market.Descriptor {
	return &market.Descriptor{
		Slug:     slug,
		Question: m.Question,
		AssetIDs: m.TokenIDs(),
		Outcomes: m.OutcomeLabels(),
	}
}
