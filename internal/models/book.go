package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by stores when no catalog record matches a lookup.
var ErrNotFound = errors.New("book not found")

// Book is a single catalog record. Records are written by the seeder; the
// storefront only reads them.
type Book struct {
	ID          uuid.UUID `json:"id"`
	ISBN        string    `json:"isbn"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	CoverURL    string    `json:"cover_url"`
	Language    string    `json:"language"`
	Genre       string    `json:"genre,omitempty"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ref returns the record's stable public reference: the ISBN when present,
// the record id otherwise. It is used both as the detail-page slug and as
// the seed for price derivation, so it must never change for a stored row.
func (b *Book) Ref() string {
	if b == nil {
		return ""
	}
	if isbn := strings.TrimSpace(b.ISBN); isbn != "" {
		return isbn
	}
	return b.ID.String()
}

// InStock reports whether at least one copy is available.
func (b *Book) InStock() bool {
	return b != nil && b.Quantity > 0
}
