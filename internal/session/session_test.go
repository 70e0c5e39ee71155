package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bookrackshop/bookrack/internal/cart"
)

func TestManager_CartRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager(NewMemoryStore(), false)
	bookID := uuid.New()

	rec := httptest.NewRecorder()
	data := &Data{}
	data.Cart.Add(cart.Item{BookID: bookID, Title: "The Guide", Price: 250, Quantity: 1})

	if _, err := m.CreateSession(context.Background(), rec, data); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "bookrack_cart" {
		t.Fatalf("cookie name = %q, want %q", cookie.Name, "bookrack_cart")
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie should be http-only")
	}

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookie)

	got, err := m.GetSession(context.Background(), req)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.Cart.Count() != 1 {
		t.Fatalf("cart count = %d, want 1", got.Cart.Count())
	}
	if got.Cart.Items[0].BookID != bookID {
		t.Fatalf("cart item id = %s, want %s", got.Cart.Items[0].BookID, bookID)
	}
}

func TestManager_GetSessionWithoutCookie(t *testing.T) {
	t.Parallel()

	m := NewManager(NewMemoryStore(), false)
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)

	if _, err := m.GetSession(context.Background(), req); err == nil {
		t.Fatal("expected error for request without cookie, got nil")
	}
}

func TestManager_DestroySessionClearsCookie(t *testing.T) {
	t.Parallel()

	m := NewManager(NewMemoryStore(), false)

	rec := httptest.NewRecorder()
	sessionID, err := m.CreateSession(context.Background(), rec, &Data{})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/cart/checkout/complete", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	destroyRec := httptest.NewRecorder()
	if err := m.DestroySession(context.Background(), destroyRec, req); err != nil {
		t.Fatalf("DestroySession() error = %v", err)
	}

	cookies := destroyRec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected clearing cookie with MaxAge -1, got %+v", cookies)
	}

	if _, ok := m.store.Get(context.Background(), sessionID); ok {
		t.Fatal("session should be gone from the store")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.Set(context.Background(), "short", &Data{CreatedAt: time.Now().Unix()}, 10*time.Millisecond)

	if _, ok := store.Get(context.Background(), "short"); !ok {
		t.Fatal("entry should be readable before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := store.Get(context.Background(), "short"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestCloneDataIsolatesCartLines(t *testing.T) {
	t.Parallel()

	original := &Data{}
	original.Cart.Add(cart.Item{BookID: uuid.New(), Title: "The Guide", Price: 250, Quantity: 1})

	cloned := cloneData(original)
	cloned.Cart.Items[0].Quantity = 99

	if original.Cart.Items[0].Quantity != 1 {
		t.Fatalf("mutating the clone changed the original: %+v", original.Cart.Items[0])
	}
}
