package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bookrackshop/bookrack/internal/models"
)

type fakeBookStore struct {
	byISBN map[string]models.Book
	byID   map[uuid.UUID]models.Book

	isbnCalls int
	idCalls   int
	lastLang  string
	err       error
}

func (f *fakeBookStore) GetByISBN(_ context.Context, isbn, language string) (models.Book, error) {
	f.isbnCalls++
	f.lastLang = language
	if f.err != nil {
		return models.Book{}, f.err
	}
	if book, ok := f.byISBN[isbn]; ok && book.Language == language {
		return book, nil
	}
	return models.Book{}, models.ErrNotFound
}

func (f *fakeBookStore) GetByID(_ context.Context, id uuid.UUID) (models.Book, error) {
	f.idCalls++
	if f.err != nil {
		return models.Book{}, f.err
	}
	if book, ok := f.byID[id]; ok {
		return book, nil
	}
	return models.Book{}, models.ErrNotFound
}

func TestResolver_ResolveByISBN(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{
		byISBN: map[string]models.Book{
			"9780143333623": {ISBN: "9780143333623", Title: "Swami and Friends", Language: "en"},
		},
	}
	r, err := NewResolver(store, "en")
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	book, err := r.Resolve(context.Background(), "9780143333623")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if book.Title != "Swami and Friends" {
		t.Fatalf("Resolve() title = %q, want %q", book.Title, "Swami and Friends")
	}
	if store.isbnCalls != 1 || store.idCalls != 0 {
		t.Fatalf("lookups = %d isbn, %d id; want 1, 0", store.isbnCalls, store.idCalls)
	}
	if store.lastLang != "en" {
		t.Fatalf("isbn lookup language = %q, want %q", store.lastLang, "en")
	}
}

func TestResolver_ResolveFallsBackToID(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("b7a7e8b0-9a35-4a0e-93f7-1a35f1f7f111")
	store := &fakeBookStore{
		byID: map[uuid.UUID]models.Book{
			id: {ID: id, Title: "The Guide", Language: "en"},
		},
	}
	r, err := NewResolver(store, "en")
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	book, err := r.Resolve(context.Background(), id.String())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if book.Title != "The Guide" {
		t.Fatalf("Resolve() title = %q, want %q", book.Title, "The Guide")
	}
	if store.isbnCalls != 1 || store.idCalls != 1 {
		t.Fatalf("lookups = %d isbn, %d id; want 1, 1", store.isbnCalls, store.idCalls)
	}
}

func TestResolver_ResolveSkipsIDLookupForPlainSlugs(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{}
	r, err := NewResolver(store, "en")
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	_, err = r.Resolve(context.Background(), "swami-and-friends")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Resolve() error = %v, want models.ErrNotFound", err)
	}
	if store.isbnCalls != 1 || store.idCalls != 0 {
		t.Fatalf("lookups = %d isbn, %d id; want 1, 0", store.isbnCalls, store.idCalls)
	}
}

func TestResolver_ResolveMissOnBothPaths(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{}
	r, err := NewResolver(store, "en")
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	_, err = r.Resolve(context.Background(), uuid.NewString())
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Resolve() error = %v, want models.ErrNotFound", err)
	}
	if store.isbnCalls != 1 || store.idCalls != 1 {
		t.Fatalf("lookups = %d isbn, %d id; want 1, 1", store.isbnCalls, store.idCalls)
	}
}

func TestResolver_ResolveWrongLanguageMisses(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{
		byISBN: map[string]models.Book{
			"9780143333623": {ISBN: "9780143333623", Title: "Swami and Friends", Language: "hi"},
		},
	}
	r, err := NewResolver(store, "en")
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	_, err = r.Resolve(context.Background(), "9780143333623")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Resolve() error = %v, want models.ErrNotFound", err)
	}
}

func TestResolver_ResolvePropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	store := &fakeBookStore{err: storeErr}
	r, err := NewResolver(store, "en")
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	_, err = r.Resolve(context.Background(), "9780143333623")
	if !errors.Is(err, storeErr) {
		t.Fatalf("Resolve() error = %v, want wrapped %v", err, storeErr)
	}
	if errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Resolve() reported a store failure as a miss")
	}
}
