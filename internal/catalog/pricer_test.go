package catalog

import (
	"testing"
)

func mustPricer(t *testing.T) *Pricer {
	t.Helper()

	p, err := NewPricer(DefaultPricePolicy())
	if err != nil {
		t.Fatalf("NewPricer() error = %v", err)
	}
	return p
}

func TestPricer_Derive(t *testing.T) {
	t.Parallel()

	p := mustPricer(t)

	tests := []struct {
		name       string
		seed       string
		summaryLen int
		want       int
	}{
		{name: "empty seed floor", seed: "", summaryLen: 0, want: 180},
		{name: "single char", seed: "A", summaryLen: 0, want: 250},
		{name: "two chars", seed: "AB", summaryLen: 0, want: 330},
		{name: "empty seed full summary", seed: "", summaryLen: 2000, want: 230},
		{name: "single char full summary", seed: "A", summaryLen: 2000, want: 310},
		{name: "accumulator wraps past 32 bits", seed: "zzzzzzzz", summaryLen: 0, want: 250},
		{name: "negative length counts as zero", seed: "A", summaryLen: -50, want: 250},
		{name: "length beyond cap clamps to cap", seed: "A", summaryLen: 9000, want: 310},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.Derive(tt.seed, tt.summaryLen); got != tt.want {
				t.Fatalf("Derive(%q, %d) = %d, want %d", tt.seed, tt.summaryLen, got, tt.want)
			}
		})
	}
}

func TestPricer_DeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	p := mustPricer(t)

	seeds := []string{"", "9780143333623", "9788129135728", "malgudi-days", "b7a7e8b0-9a35-4a0e-93f7-1a35f1f7f111"}
	for _, seed := range seeds {
		first := p.Derive(seed, 512)
		for i := 0; i < 50; i++ {
			if got := p.Derive(seed, 512); got != first {
				t.Fatalf("Derive(%q, 512) changed between calls: %d then %d", seed, first, got)
			}
		}
	}
}

func TestPricer_DeriveStaysInBand(t *testing.T) {
	t.Parallel()

	p := mustPricer(t)

	seeds := []string{
		"", "a", "zz", "9780143039778", "9789380032825", "swami-and-friends",
		"गोदान", "ردولف", "一九八四", "the-guide", "9999999999999999999",
		"b7a7e8b0-9a35-4a0e-93f7-1a35f1f7f111",
	}
	lengths := []int{-1, 0, 1, 500, 1999, 2000, 2001, 100000}

	for _, seed := range seeds {
		for _, length := range lengths {
			got := p.Derive(seed, length)
			if got < 180 || got > 530 {
				t.Fatalf("Derive(%q, %d) = %d, outside [180, 530]", seed, length, got)
			}
			if got%10 != 0 {
				t.Fatalf("Derive(%q, %d) = %d, not a multiple of 10", seed, length, got)
			}
		}
	}
}

func TestPricer_DeriveGrowsWithSummary(t *testing.T) {
	t.Parallel()

	p := mustPricer(t)

	for _, seed := range []string{"", "A", "9780143333623", "zzzzzzzz"} {
		prev := p.Derive(seed, 0)
		for length := 50; length <= 2400; length += 50 {
			got := p.Derive(seed, length)
			if got < prev {
				t.Fatalf("Derive(%q, %d) = %d, below Derive at shorter summary %d", seed, length, got, prev)
			}
			prev = got
		}
	}
}

func TestNewPricer_RejectsBadPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy PricePolicy
	}{
		{name: "negative band min", policy: PricePolicy{BandMin: -10, BandMax: 420, SummaryCap: 2000, ContentSpread: 0.25}},
		{name: "max below min", policy: PricePolicy{BandMin: 420, BandMax: 180, SummaryCap: 2000, ContentSpread: 0.25}},
		{name: "zero summary cap", policy: PricePolicy{BandMin: 180, BandMax: 420, SummaryCap: 0, ContentSpread: 0.25}},
		{name: "negative spread", policy: PricePolicy{BandMin: 180, BandMax: 420, SummaryCap: 2000, ContentSpread: -0.1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewPricer(tt.policy); err == nil {
				t.Fatalf("NewPricer(%+v) expected error, got nil", tt.policy)
			}
		})
	}
}
