package catalog

// Package catalog implements slug resolution, display pricing, and seed
// file handling for the book catalog.

import (
	"fmt"
	"math"
	"unicode/utf16"
)

// PricePolicy holds the tunables for derived display prices. Use
// DefaultPricePolicy for the stock banding.
type PricePolicy struct {
	// BandMin and BandMax bound the base price before the content
	// adjustment is applied.
	BandMin int
	BandMax int
	// SummaryCap caps the description length that feeds the content
	// adjustment.
	SummaryCap int
	// ContentSpread is the maximum fractional uplift a description at or
	// above SummaryCap adds to the base price.
	ContentSpread float64
}

// DefaultPricePolicy returns the stock banding used when no overrides are
// configured.
func DefaultPricePolicy() PricePolicy {
	return PricePolicy{
		BandMin:       180,
		BandMax:       420,
		SummaryCap:    2000,
		ContentSpread: 0.25,
	}
}

// Pricer derives display prices for catalog records that carry no stored
// price. Derivation is pure: the same seed and summary length always produce
// the same price, so records never need a price column.
type Pricer struct {
	policy PricePolicy
}

// NewPricer validates the policy and returns a pricer using it.
func NewPricer(policy PricePolicy) (*Pricer, error) {
	if policy.BandMin < 0 {
		return nil, fmt.Errorf("price band min must not be negative, got %d", policy.BandMin)
	}
	if policy.BandMax < policy.BandMin {
		return nil, fmt.Errorf("price band max %d must not be below min %d", policy.BandMax, policy.BandMin)
	}
	if policy.SummaryCap <= 0 {
		return nil, fmt.Errorf("summary cap must be positive, got %d", policy.SummaryCap)
	}
	if policy.ContentSpread < 0 {
		return nil, fmt.Errorf("content spread must not be negative, got %g", policy.ContentSpread)
	}
	return &Pricer{policy: policy}, nil
}

// Derive returns the display price for a record. seed is the record's stable
// reference and summaryLen the length of its description; a negative length
// counts as zero. Derive never fails: every input maps into the policy band.
func (p *Pricer) Derive(seed string, summaryLen int) int {
	span := int64(p.policy.BandMax - p.policy.BandMin + 1)
	base := int64(p.policy.BandMin) + seedHash(seed)%span
	raw := float64(base) * p.contentFactor(summaryLen)
	return int(math.Round(raw/10)) * 10
}

func (p *Pricer) contentFactor(summaryLen int) float64 {
	if summaryLen < 0 {
		summaryLen = 0
	}
	if summaryLen > p.policy.SummaryCap {
		summaryLen = p.policy.SummaryCap
	}
	return 1 + float64(summaryLen)/float64(p.policy.SummaryCap)*p.policy.ContentSpread
}

// seedHash folds the seed into a non-negative value by 31-multiply
// accumulation over its UTF-16 code units. The accumulator wraps in 32-bit
// signed arithmetic; the wraparound is part of the contract, since stored
// records must keep deriving the same price across releases.
func seedHash(seed string) int64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		h = h*31 + int32(unit)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
