package catalog

import (
	"fmt"
	"strings"
)

// Validator validates parsed seed files before they reach the database.
type Validator struct{}

// NewValidator creates a new seed file validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a seed file for completeness and duplicate records. The
// (isbn, language) pair must be unique across the file, since the store
// upserts on it.
func (v *Validator) Validate(file *SeedFile) error {
	if file == nil {
		return fmt.Errorf("seed file is required")
	}
	if strings.TrimSpace(file.Catalog.Name) == "" {
		return fmt.Errorf("catalog name is required")
	}
	if len(file.Books) == 0 {
		return fmt.Errorf("at least one book is required")
	}

	seen := make(map[string]int, len(file.Books))
	for i := range file.Books {
		entry := &file.Books[i]
		if err := v.validateEntry(file, entry); err != nil {
			return fmt.Errorf("book %d: %w", i, err)
		}

		key := strings.TrimSpace(entry.ISBN) + "|" + file.EffectiveLanguage(entry)
		if first, dup := seen[key]; dup {
			return fmt.Errorf("book %d: duplicate isbn %q for language %q (first at %d)",
				i, strings.TrimSpace(entry.ISBN), file.EffectiveLanguage(entry), first)
		}
		seen[key] = i
	}

	return nil
}

func (v *Validator) validateEntry(file *SeedFile, entry *SeedEntry) error {
	if strings.TrimSpace(entry.ISBN) == "" {
		return fmt.Errorf("isbn is required")
	}
	if strings.TrimSpace(entry.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(entry.Author) == "" {
		return fmt.Errorf("author is required")
	}
	if file.EffectiveLanguage(entry) == "" {
		return fmt.Errorf("language is required (set catalog.language for a default)")
	}
	if entry.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", entry.Quantity)
	}
	return nil
}
