package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestBook_Ref(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("b7a7e8b0-9a35-4a0e-93f7-1a35f1f7f111")

	tests := []struct {
		name string
		book *Book
		want string
	}{
		{name: "isbn wins over id", book: &Book{ID: id, ISBN: "9780143039648"}, want: "9780143039648"},
		{name: "isbn is trimmed", book: &Book{ID: id, ISBN: "  9780143039648\n"}, want: "9780143039648"},
		{name: "no isbn falls back to id", book: &Book{ID: id}, want: id.String()},
		{name: "blank isbn falls back to id", book: &Book{ID: id, ISBN: "   "}, want: id.String()},
		{name: "nil book", book: nil, want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.book.Ref(); got != tt.want {
				t.Fatalf("Ref() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBook_InStock(t *testing.T) {
	t.Parallel()

	if b := (&Book{Quantity: 3}); !b.InStock() {
		t.Fatal("quantity 3 should be in stock")
	}
	if b := (&Book{Quantity: 0}); b.InStock() {
		t.Fatal("quantity 0 should be out of stock")
	}
	var nilBook *Book
	if nilBook.InStock() {
		t.Fatal("nil book should be out of stock")
	}
}
