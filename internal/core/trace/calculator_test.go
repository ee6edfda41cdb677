package trace

import (
	"testing"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

func TestActivityTraces_Narrativa(t *testing.T) {
	calc := DefaultCalculator()

	cases := []struct {
		name      string
		wordCount int
		want      int
	}{
		{"minimum length", 1, 300},
		{"just below first step", 999, 300},
		{"exactly one step", 1000, 400},
		{"mid step", 1499, 400},
		{"two steps", 1500, 500},
		{"long piece", 5000, 1200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.ActivityTraces(domain.TypeNarrativa, tc.wordCount, 0)
			if got != tc.want {
				t.Fatalf("narrativa %d words: expected %d, got %d", tc.wordCount, tc.want, got)
			}
		})
	}
}

func TestActivityTraces_Microcuento(t *testing.T) {
	calc := DefaultCalculator()

	if got := calc.ActivityTraces(domain.TypeMicrocuento, 100, 0); got != 100 {
		t.Fatalf("100 words: expected 100, got %d", got)
	}
	if got := calc.ActivityTraces(domain.TypeMicrocuento, 1, 0); got != 100 {
		t.Fatalf("1 word: expected 100, got %d", got)
	}
	if got := calc.ActivityTraces(domain.TypeMicrocuento, 101, 0); got != 0 {
		t.Fatalf("101 words breaks the form: expected 0, got %d", got)
	}
}

func TestActivityTraces_Drabble(t *testing.T) {
	calc := DefaultCalculator()

	for _, wc := range []int{140, 150, 160} {
		if got := calc.ActivityTraces(domain.TypeDrabble, wc, 0); got != 150 {
			t.Fatalf("%d words: expected 150, got %d", wc, got)
		}
	}
	for _, wc := range []int{139, 161, 1000} {
		if got := calc.ActivityTraces(domain.TypeDrabble, wc, 0); got != 0 {
			t.Fatalf("%d words out of range: expected 0, got %d", wc, got)
		}
	}
}

func TestActivityTraces_HiloAndRol(t *testing.T) {
	calc := DefaultCalculator()

	cases := []struct {
		activityType domain.ActivityType
		responses    int
		want         int
	}{
		{domain.TypeHilo, 0, 100},
		{domain.TypeHilo, 4, 100},
		{domain.TypeHilo, 5, 150},
		{domain.TypeHilo, 14, 200},
		{domain.TypeRol, 0, 250},
		{domain.TypeRol, 4, 250},
		{domain.TypeRol, 5, 400},
		{domain.TypeRol, 10, 550},
	}
	for _, tc := range cases {
		got := calc.ActivityTraces(tc.activityType, 200, tc.responses)
		if got != tc.want {
			t.Fatalf("%s with %d responses: expected %d, got %d", tc.activityType, tc.responses, tc.want, got)
		}
	}
}

func TestActivityTraces_Otro(t *testing.T) {
	calc := DefaultCalculator()

	if got := calc.ActivityTraces(domain.TypeOtro, 50, 0); got != 150 {
		t.Fatalf("expected flat 150, got %d", got)
	}
	if got := calc.ActivityTraces(domain.TypeOtro, 10000, 99); got != 150 {
		t.Fatalf("flat award must ignore size: expected 150, got %d", got)
	}
}

func TestActivityTraces_DegradesToZero(t *testing.T) {
	calc := DefaultCalculator()

	if got := calc.ActivityTraces(domain.TypeNarrativa, 0, 0); got != 0 {
		t.Fatalf("zero word count: expected 0, got %d", got)
	}
	if got := calc.ActivityTraces(domain.TypeNarrativa, -5, 0); got != 0 {
		t.Fatalf("negative word count: expected 0, got %d", got)
	}
	if got := calc.ActivityTraces(domain.ActivityType("poema"), 500, 0); got != 0 {
		t.Fatalf("unknown type: expected 0, got %d", got)
	}
}

func TestBonusTraces(t *testing.T) {
	calc := DefaultCalculator()

	cases := map[string]int{
		domain.BonusBirthday:     100,
		domain.BonusProjectEntry: 100,
		domain.BonusPromo:        50,
		domain.BonusFirstMonth:   50,
		domain.BonusBimesterEnd:  100,
		"express-tier-1":         200,
		"express-tier-5":         50,
	}
	for category, want := range cases {
		if got := calc.BonusTraces(category); got != want {
			t.Fatalf("bonus %q: expected %d, got %d", category, want, got)
		}
	}

	if got := calc.BonusTraces("BIRTHDAY"); got != 100 {
		t.Fatalf("lookup must be case-insensitive, got %d", got)
	}
	if got := calc.BonusTraces("anniversary"); got != 0 {
		t.Fatalf("unknown category: expected 0, got %d", got)
	}
}

func TestExpressActivityTraces(t *testing.T) {
	calc := DefaultCalculator()

	tiers := map[string]int{
		"tier1": 200,
		"tier2": 150,
		"tier3": 100,
		"tier4": 75,
		"tier5": 50,
	}
	for tier, want := range tiers {
		if got := calc.ExpressActivityTraces(tier); got != want {
			t.Fatalf("tier %q: expected %d, got %d", tier, want, got)
		}
	}
	if got := calc.ExpressActivityTraces("tier6"); got != 0 {
		t.Fatalf("unknown tier: expected 0, got %d", got)
	}
}
