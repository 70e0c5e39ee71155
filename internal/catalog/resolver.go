package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookrackshop/bookrack/internal/models"
)

// bookGetter is the slice of the book store the resolver needs.
type bookGetter interface {
	GetByISBN(ctx context.Context, isbn, language string) (models.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Book, error)
}

// Resolver maps a detail-page slug to a catalog record. A slug is tried
// first as an ISBN under the storefront language, then as a record id when
// it has the shape of one. At most two lookups run per call.
type Resolver struct {
	books    bookGetter
	language string
}

// NewResolver returns a resolver reading from books, with ISBN lookups
// pinned to the given language variant.
func NewResolver(books bookGetter, language string) (*Resolver, error) {
	if books == nil {
		return nil, fmt.Errorf("book store is required")
	}
	if language == "" {
		return nil, fmt.Errorf("language is required")
	}
	return &Resolver{books: books, language: language}, nil
}

// Resolve returns the record the slug refers to, or models.ErrNotFound when
// neither lookup path matches. A slug that is not id-shaped never reaches
// the id lookup; its miss is reported from the ISBN path alone.
func (r *Resolver) Resolve(ctx context.Context, slug string) (models.Book, error) {
	book, err := r.books.GetByISBN(ctx, slug, r.language)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.Book{}, fmt.Errorf("isbn lookup for %q: %w", slug, err)
	}

	id, parseErr := uuid.Parse(slug)
	if parseErr != nil {
		return models.Book{}, err
	}

	book, err = r.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Book{}, err
		}
		return models.Book{}, fmt.Errorf("id lookup for %q: %w", slug, err)
	}
	return book, nil
}
