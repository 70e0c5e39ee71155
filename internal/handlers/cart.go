package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"
	"github.com/google/uuid"

	"github.com/bookrackshop/bookrack/internal/cart"
	"github.com/bookrackshop/bookrack/internal/observability"
	"github.com/bookrackshop/bookrack/internal/session"
	"github.com/bookrackshop/bookrack/internal/stripe"
	"github.com/bookrackshop/bookrack/ui/views"
)

// CartView renders the cart page for the current session. Visitors without
// a session see an empty cart rather than an error.
func (h *Handlers) CartView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	sess := h.sessionFromRequest(ctx, r)
	props := h.cartPageProps(sess)

	if err := views.CartPage(props).Render(ctx, w); err != nil {
		logger.Error("failed to render cart page", "error", err)
		http.Error(w, "Failed to render cart", http.StatusInternalServerError)
	}
}

// CartAdd handles the add-to-cart form posted from a book page.
func (h *Handlers) CartAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)
	meter := observability.MeterFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	bookID, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		meter.Count("cart.add.rejected", 1, sentry.WithAttributes(attribute.String("reason", "invalid_id")))
		http.Error(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		meter.Count("cart.add.rejected", 1, sentry.WithAttributes(attribute.String("reason", "missing_title")))
		http.Error(w, "Book title required", http.StatusBadRequest)
		return
	}

	price, err := strconv.Atoi(r.FormValue("price"))
	if err != nil || price < 0 {
		meter.Count("cart.add.rejected", 1, sentry.WithAttributes(attribute.String("reason", "invalid_price")))
		http.Error(w, "Invalid price", http.StatusBadRequest)
		return
	}

	item := cart.Item{
		BookID:   bookID,
		Title:    title,
		CoverURL: strings.TrimSpace(r.FormValue("cover")),
		Price:    price,
		Quantity: 1,
	}

	sess := h.sessionFromRequest(ctx, r)
	if sess == nil {
		sess = &session.Data{}
	}
	sess.Cart.Add(item)

	if _, ok := h.sessionManager.SessionID(r); ok {
		err = h.sessionManager.UpdateSession(ctx, r, sess)
	} else {
		_, err = h.sessionManager.CreateSession(ctx, w, sess)
	}
	if err != nil {
		logger.Error("failed to save cart session", "error", err, "book_id", bookID)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	meter.Count("cart.items.added", 1)
	logger.Debug("book added to cart", "book_id", bookID, "title", title)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartRemove removes one line from the cart.
func (h *Handlers) CartRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	bookID, err := uuid.Parse(r.FormValue("id"))
	if err != nil {
		http.Error(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	sess := h.sessionFromRequest(ctx, r)
	if sess == nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	sess.Cart.Remove(bookID)
	if err := h.sessionManager.UpdateSession(ctx, r, sess); err != nil {
		logger.Error("failed to update cart session", "error", err, "book_id", bookID)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Checkout sends the visitor to a Stripe Checkout session for the cart.
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)
	meter := observability.MeterFromContext(ctx)

	if h.checkout == nil {
		http.Error(w, "Checkout is not available", http.StatusServiceUnavailable)
		return
	}

	sess := h.sessionFromRequest(ctx, r)
	if sess == nil || sess.Cart.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	sessionRef, _ := h.sessionManager.SessionID(r)

	span := sentry.StartSpan(ctx, "checkout.create")
	checkoutURL, err := h.checkout.CreateCheckoutSession(span.Context(), stripe.CheckoutParams{
		Items:      sess.Cart.Items,
		Currency:   h.config.CheckoutCurrency,
		SessionRef: sessionRef,
		SuccessURL: h.config.BaseURL + "/cart/checkout/complete",
		CancelURL:  h.config.BaseURL + "/cart",
	})
	span.Finish()
	if err != nil {
		logger.Error("failed to create checkout session", "error", err, "items", sess.Cart.Count())
		http.Error(w, "Failed to start checkout", http.StatusInternalServerError)
		return
	}

	meter.Count("checkout.sessions.created", 1)
	logger.Info("checkout session created", "items", sess.Cart.Count(), "subtotal", sess.Cart.Subtotal())

	http.Redirect(w, r, checkoutURL, http.StatusSeeOther)
}

// CheckoutComplete handles the return from Stripe and clears the cart.
func (h *Handlers) CheckoutComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	if err := h.sessionManager.DestroySession(ctx, w, r); err != nil {
		logger.Warn("failed to destroy session after checkout", "error", err)
	}

	if err := views.CheckoutCompletePage().Render(ctx, w); err != nil {
		logger.Error("failed to render checkout complete page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// cartPageProps builds the cart view model from session data. A nil session
// renders as an empty cart.
func (h *Handlers) cartPageProps(sess *session.Data) views.CartPageProps {
	props := views.CartPageProps{
		SubtotalFormatted: h.priceFormatter.Format(0),
		CheckoutEnabled:   h.checkout != nil,
	}
	if sess == nil || sess.Cart.IsEmpty() {
		return props
	}

	lines := make([]views.CartLine, 0, len(sess.Cart.Items))
	for _, item := range sess.Cart.Items {
		lines = append(lines, views.CartLine{
			BookID:             item.BookID.String(),
			Title:              item.Title,
			CoverURL:           coverOrFallback(item.CoverURL),
			Quantity:           item.Quantity,
			PriceFormatted:     h.priceFormatter.Format(item.Price),
			LineTotalFormatted: h.priceFormatter.Format(item.Price * item.Quantity),
		})
	}

	props.Lines = lines
	props.Count = sess.Cart.Count()
	props.SubtotalFormatted = h.priceFormatter.Format(sess.Cart.Subtotal())
	return props
}
