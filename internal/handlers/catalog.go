package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/bookrackshop/bookrack/internal/cache"
	"github.com/bookrackshop/bookrack/internal/models"
	"github.com/bookrackshop/bookrack/internal/observability"
	"github.com/bookrackshop/bookrack/ui/views"
)

const (
	listingPageSize = 12
	listingCacheTTL = 60 * time.Second
)

// Catalog renders the listing page. Raw records are cached briefly; prices
// are always derived at render time.
func (h *Handlers) Catalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)
	meter := observability.MeterFromContext(ctx)

	page := pageParam(r)

	books, cached, err := h.listBooks(ctx, page)
	if err != nil {
		logger.Error("failed to list books", "page", page, "error", err)
		http.Error(w, "Failed to load catalog", http.StatusInternalServerError)
		return
	}
	if cached {
		meter.Count("catalog.listing.cache_hits", 1)
	} else {
		meter.Count("catalog.listing.cache_misses", 1)
	}

	hasNext := false
	if len(books) > listingPageSize {
		hasNext = true
		books = books[:listingPageSize]
	}

	cards := make([]views.BookCard, 0, len(books))
	for i := range books {
		b := &books[i]
		price := h.pricer.Derive(b.Ref(), utf8.RuneCountInString(b.Description))
		cards = append(cards, views.BookCard{
			Slug:           b.Ref(),
			Title:          b.Title,
			Author:         b.Author,
			Genre:          b.Genre,
			CoverURL:       coverOrFallback(b.CoverURL),
			PriceFormatted: h.priceFormatter.Format(price),
		})
	}

	props := views.CatalogPageProps{
		CatalogName: "Bookrack",
		Cards:       cards,
		Page:        page,
		HasPrev:     page > 1,
		PrevPage:    page - 1,
		HasNext:     hasNext,
		NextPage:    page + 1,
	}

	if err := views.CatalogPage(props).Render(ctx, w); err != nil {
		logger.Error("failed to render catalog page", "error", err)
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
	}
}

// listBooks returns one listing page plus one extra record as the
// has-more probe. Pages are cached as raw records so a cache hit still
// reprices on render.
func (h *Handlers) listBooks(ctx context.Context, page int) ([]models.Book, bool, error) {
	key := cache.ListingKey(h.config.CatalogLanguage, page)

	if raw, err := h.cacheProvider.Get(ctx, key); err == nil {
		var books []models.Book
		if err := json.Unmarshal(raw, &books); err == nil {
			return books, true, nil
		}
		_ = h.cacheProvider.Delete(ctx, key)
	}

	offset := (page - 1) * listingPageSize
	books, err := h.bookStore.List(ctx, h.config.CatalogLanguage, listingPageSize+1, offset)
	if err != nil {
		return nil, false, err
	}

	if raw, err := json.Marshal(books); err == nil {
		_ = h.cacheProvider.Set(ctx, key, raw, listingCacheTTL)
	}

	return books, false, nil
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
