package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/bookrackshop/bookrack/internal/models"
	"github.com/bookrackshop/bookrack/internal/observability"
	"github.com/bookrackshop/bookrack/ui/views"
)

// BookDetail renders the product page for one catalog record. The slug is
// resolved as an ISBN first, then as a record id. Misses are ordinary
// traffic and answered with a plain 404.
func (h *Handlers) BookDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)
	meter := observability.MeterFromContext(ctx)

	slug := mux.Vars(r)["slug"]

	book, err := h.resolver.Resolve(ctx, slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			meter.Count("catalog.detail.not_found", 1)
			logger.Debug("book not found", "slug", slug)
			http.NotFound(w, r)
			return
		}
		logger.Error("failed to resolve book", "slug", slug, "error", err)
		http.Error(w, "Failed to load book", http.StatusInternalServerError)
		return
	}

	price := h.pricer.Derive(book.Ref(), utf8.RuneCountInString(book.Description))

	props := views.BookPageProps{
		BookID:         book.ID.String(),
		Title:          book.Title,
		Author:         book.Author,
		Genre:          book.Genre,
		Description:    book.Description,
		CoverURL:       coverOrFallback(book.CoverURL),
		Price:          price,
		PriceFormatted: h.priceFormatter.Format(price),
		Availability:   availabilityText(book.Quantity),
		InStock:        book.InStock(),
	}

	meter.Count("catalog.detail.views", 1)
	if err := views.BookPage(props).Render(ctx, w); err != nil {
		logger.Error("failed to render book page", "slug", slug, "error", err)
		http.Error(w, "Failed to render book page", http.StatusInternalServerError)
	}
}

// coverOrFallback substitutes the bundled placeholder for records without a
// cover image.
func coverOrFallback(coverURL string) string {
	if strings.TrimSpace(coverURL) == "" {
		return views.CoverFallbackPath
	}
	return coverURL
}

func availabilityText(quantity int) string {
	if quantity > 0 {
		return fmt.Sprintf("%d available", quantity)
	}
	return "Out of stock"
}
