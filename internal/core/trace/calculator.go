// Package trace implements the points engine: the piecewise scoring function
// over activity metadata and the fixed bonus/express award tables.
//
// Every function is pure and total. Invalid or unknown input degrades to a
// zero award instead of an error so a member's submission is never blocked
// over a classification edge case; the transport layer is responsible for
// rejecting nonsensical combinations before they reach here.
package trace

import (
	"strings"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

// Calculator scores activities and bonuses from injectable award tables.
type Calculator struct {
	bonus   map[string]int
	express map[string]int
}

// NewCalculator builds a Calculator from explicit tables. Keys are matched
// case-insensitively.
func NewCalculator(bonus, express map[string]int) *Calculator {
	lowered := func(in map[string]int) map[string]int {
		out := make(map[string]int, len(in))
		for k, v := range in {
			out[strings.ToLower(k)] = v
		}
		return out
	}
	return &Calculator{bonus: lowered(bonus), express: lowered(express)}
}

// DefaultCalculator returns a Calculator loaded with the canonical award
// amounts.
func DefaultCalculator() *Calculator {
	return NewCalculator(
		map[string]int{
			domain.BonusBirthday:     100,
			domain.BonusProjectEntry: 100,
			domain.BonusPromo:        50,
			domain.BonusFirstMonth:   50,
			domain.BonusBimesterEnd:  100,
			"express-tier-1":         200,
			"express-tier-2":         150,
			"express-tier-3":         100,
			"express-tier-4":         75,
			"express-tier-5":         50,
		},
		// Intentionally overlaps part of the bonus table: express activities
		// scored via album tier use this table, not the bonus one.
		map[string]int{
			"tier1": 200,
			"tier2": 150,
			"tier3": 100,
			"tier4": 75,
			"tier5": 50,
		},
	)
}

// ActivityTraces returns the trace award for an activity submission.
//
// Rules by type:
//   - narrativa: base 300, plus 100 per full 500 words beyond the first 500.
//   - microcuento: 100 only when the word count stays within 100.
//   - drabble: 150 only for word counts in [140, 160].
//   - hilo: base 100, plus 50 per 5 responses.
//   - rol: base 250, plus 150 per 5 responses.
//   - otro: flat 150.
//
// A non-positive word count or an unrecognised type yields 0.
func (c *Calculator) ActivityTraces(t domain.ActivityType, wordCount, responses int) int {
	if wordCount <= 0 {
		return 0
	}

	switch t {
	case domain.TypeNarrativa:
		traces := 300
		if wordCount > 500 {
			traces += 100 * ((wordCount - 500) / 500)
		}
		return traces
	case domain.TypeMicrocuento:
		if wordCount <= 100 {
			return 100
		}
		return 0
	case domain.TypeDrabble:
		if wordCount >= 140 && wordCount <= 160 {
			return 150
		}
		return 0
	case domain.TypeHilo:
		traces := 100
		if responses > 0 {
			traces += 50 * (responses / 5)
		}
		return traces
	case domain.TypeRol:
		traces := 250
		if responses > 0 {
			traces += 150 * (responses / 5)
		}
		return traces
	case domain.TypeOtro:
		return 150
	default:
		return 0
	}
}

// BonusTraces returns the fixed award for a named bonus category,
// case-insensitively. Unknown categories yield 0.
func (c *Calculator) BonusTraces(category string) int {
	return c.bonus[strings.ToLower(category)]
}

// ExpressActivityTraces returns the award for one of the express arista's
// five promotional album tiers, case-insensitively. Unknown tiers yield 0.
func (c *Calculator) ExpressActivityTraces(albumTier string) int {
	return c.express[strings.ToLower(albumTier)]
}
