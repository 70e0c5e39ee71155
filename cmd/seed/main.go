package main

// Seeds the catalog table from a YAML seed file. Records are upserted on
// (isbn, language), so reseeding is safe.

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/bookrackshop/bookrack/internal/catalog"
	"github.com/bookrackshop/bookrack/internal/config"
	"github.com/bookrackshop/bookrack/internal/db"
	"github.com/bookrackshop/bookrack/internal/models"
	"github.com/bookrackshop/bookrack/internal/observability"
)

func main() {
	var (
		file         = flag.String("file", "db/seed/catalog.yaml", "Catalog seed file")
		verifyCovers = flag.Bool("verify-covers", false, "Check that cover URLs respond before seeding")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	seedFile, err := catalog.NewParser().Parse(content)
	if err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}
	if err := catalog.NewValidator().Validate(seedFile); err != nil {
		log.Fatalf("Invalid seed file: %v", err)
	}

	if *verifyCovers {
		dropDeadCovers(seedFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	store, err := db.NewBookStore(pool, cfg.CatalogTable)
	if err != nil {
		log.Fatalf("Failed to open book store: %v", err)
	}

	log.Printf("Seeding %q with %d books...", seedFile.Catalog.Name, len(seedFile.Books))
	for i := range seedFile.Books {
		entry := &seedFile.Books[i]
		book := models.Book{
			ISBN:        strings.TrimSpace(entry.ISBN),
			Title:       entry.Title,
			Author:      entry.Author,
			Description: entry.Description,
			CoverURL:    strings.TrimSpace(entry.Cover),
			Language:    seedFile.EffectiveLanguage(entry),
			Genre:       entry.Genre,
			Quantity:    entry.Quantity,
		}
		if err := store.Upsert(ctx, &book); err != nil {
			log.Fatalf("Failed to upsert %q: %v", book.ISBN, err)
		}
		fmt.Printf("  %s  %s (%s)\n", book.ID, book.Title, book.Language)
	}

	total, err := store.Count(ctx, cfg.CatalogLanguage)
	if err != nil {
		log.Fatalf("Failed to count books: %v", err)
	}
	log.Printf("Done. %d books on the %q shelf.", total, cfg.CatalogLanguage)
}

// dropDeadCovers blanks cover URLs that do not answer a HEAD request, so the
// storefront falls back to the bundled placeholder instead of a broken image.
func dropDeadCovers(seedFile *catalog.SeedFile) {
	client := observability.NewHTTPClient(10 * time.Second)

	for i := range seedFile.Books {
		entry := &seedFile.Books[i]
		cover := strings.TrimSpace(entry.Cover)
		if cover == "" {
			continue
		}

		resp, err := client.Head(cover)
		if err != nil {
			log.Printf("WARNING: dropping cover for %s, unreachable: %v", entry.ISBN, err)
			entry.Cover = ""
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			log.Printf("WARNING: dropping cover for %s, got %d", entry.ISBN, resp.StatusCode)
			entry.Cover = ""
		}
	}
}
