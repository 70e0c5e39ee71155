package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bookrackshop/bookrack/internal/cache"
	"github.com/bookrackshop/bookrack/internal/catalog"
	"github.com/bookrackshop/bookrack/internal/config"
	"github.com/bookrackshop/bookrack/internal/logging"
	"github.com/bookrackshop/bookrack/internal/models"
)

type fakeListStore struct {
	books     []models.Book
	listCalls int
}

func (f *fakeListStore) List(_ context.Context, language string, limit, offset int) ([]models.Book, error) {
	f.listCalls++

	var matched []models.Book
	for _, book := range f.books {
		if book.Language == language {
			matched = append(matched, book)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func shelfOf(count int, language string) []models.Book {
	books := make([]models.Book, 0, count)
	for i := 1; i <= count; i++ {
		books = append(books, models.Book{
			ID:       uuid.New(),
			ISBN:     fmt.Sprintf("97801234567%02d", i),
			Title:    fmt.Sprintf("Shelf Book %02d", i),
			Author:   "Test Author",
			Language: language,
			Quantity: 3,
		})
	}
	return books
}

func newCatalogHandlers(t *testing.T, store *fakeListStore) *Handlers {
	t.Helper()

	cacheProvider, err := cache.NewMemoryProvider()
	if err != nil {
		t.Fatalf("failed to build cache: %v", err)
	}
	pricer, err := catalog.NewPricer(catalog.DefaultPricePolicy())
	if err != nil {
		t.Fatalf("failed to build pricer: %v", err)
	}

	return &Handlers{
		config:         &config.Config{CatalogLanguage: "en"},
		bookStore:      store,
		cacheProvider:  cacheProvider,
		pricer:         pricer,
		priceFormatter: catalog.NewPriceFormatter("en-IN", "₹"),
		logger:         logging.Nop(),
	}
}

func TestCatalog_RendersFirstPage(t *testing.T) {
	t.Parallel()

	store := &fakeListStore{books: shelfOf(13, "en")}
	h := newCatalogHandlers(t, store)

	rec := httptest.NewRecorder()
	h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if got := strings.Count(body, `class="book-card"`); got != listingPageSize {
		t.Errorf("expected %d cards on the first page, got %d", listingPageSize, got)
	}
	if !strings.Contains(body, `href="/books/9780123456701"`) {
		t.Errorf("expected card links to use the ISBN slug")
	}
	if !strings.Contains(body, `href="/?page=2"`) {
		t.Errorf("expected a next-page link")
	}
	if strings.Contains(body, "Previous") {
		t.Errorf("expected no previous link on the first page")
	}
}

func TestCatalog_RendersLastPage(t *testing.T) {
	t.Parallel()

	store := &fakeListStore{books: shelfOf(13, "en")}
	h := newCatalogHandlers(t, store)

	rec := httptest.NewRecorder()
	h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/?page=2", nil))

	body := rec.Body.String()
	if got := strings.Count(body, `class="book-card"`); got != 1 {
		t.Errorf("expected 1 card on the last page, got %d", got)
	}
	if !strings.Contains(body, `href="/?page=1"`) {
		t.Errorf("expected a previous-page link")
	}
	if strings.Contains(body, "Next") {
		t.Errorf("expected no next link on the last page")
	}
}

func TestCatalog_EmptyShelf(t *testing.T) {
	t.Parallel()

	h := newCatalogHandlers(t, &fakeListStore{})

	rec := httptest.NewRecorder()
	h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "The shelf is empty right now.") {
		t.Errorf("expected the empty shelf message")
	}
}

func TestCatalog_ReusesCachedListing(t *testing.T) {
	t.Parallel()

	store := &fakeListStore{books: shelfOf(3, "en")}
	h := newCatalogHandlers(t, store)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
		}
	}

	if store.listCalls != 1 {
		t.Errorf("expected the second render to come from cache, got %d store reads", store.listCalls)
	}
}

func TestCatalog_HidesOtherLanguageVariants(t *testing.T) {
	t.Parallel()

	books := shelfOf(2, "en")
	books = append(books, models.Book{
		ID:       uuid.New(),
		ISBN:     "9789352765355",
		Title:    "गोदान",
		Author:   "Munshi Premchand",
		Language: "hi",
		Quantity: 1,
	})
	h := newCatalogHandlers(t, &fakeListStore{books: books})

	rec := httptest.NewRecorder()
	h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	if got := strings.Count(body, `class="book-card"`); got != 2 {
		t.Errorf("expected 2 cards, got %d", got)
	}
	if strings.Contains(body, "गोदान") {
		t.Errorf("expected records in other languages to stay off the listing")
	}
}

func TestPageParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=1", 1},
		{"?page=7", 7},
		{"?page=0", 1},
		{"?page=-2", 1},
		{"?page=abc", 1},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		if got := pageParam(req); got != tt.want {
			t.Errorf("pageParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
