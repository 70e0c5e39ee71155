package catalog

import (
	"testing"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid seed file",
			yaml: `
catalog:
  name: "Bookrack Demo"
  language: "en"
books:
  - isbn: "9780143333623"
    title: "Swami and Friends"
    author: "R. K. Narayan"
    description: "The adventures of a schoolboy in Malgudi."
    cover: "https://covers.openlibrary.org/b/isbn/9780143333623-M.jpg"
    genre: "Fiction"
    quantity: 4
  - isbn: "9788129135728"
    title: "गोदान"
    author: "Premchand"
    language: "hi"
    quantity: 2
`,
			wantErr: false,
		},
		{
			name:    "invalid yaml",
			yaml:    "invalid: yaml: content:",
			wantErr: true,
		},
	}

	parser := NewParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := parser.ParseFromString(tt.yaml)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if file == nil {
				t.Error("expected seed file but got nil")
				return
			}

			if file.Catalog.Name != "Bookrack Demo" {
				t.Errorf("expected catalog name 'Bookrack Demo', got '%s'", file.Catalog.Name)
			}

			if len(file.Books) != 2 {
				t.Errorf("expected 2 books, got %d", len(file.Books))
			}

			if got := file.EffectiveLanguage(&file.Books[0]); got != "en" {
				t.Errorf("expected first book to inherit language 'en', got '%s'", got)
			}

			if got := file.EffectiveLanguage(&file.Books[1]); got != "hi" {
				t.Errorf("expected second book language 'hi', got '%s'", got)
			}
		})
	}
}
