package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookrackshop/bookrack/internal/models"
)

const queryTimeout = 3 * time.Second

const bookColumns = "id, isbn, title, author, description, cover_url, language, genre, quantity, created_at, updated_at"

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// BookStore reads and writes catalog records in a single configurable table.
type BookStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewBookStore creates a store over the given table. The table name is
// interpolated into SQL, not bound as a parameter, so it must be a plain
// lowercase identifier.
func NewBookStore(pool *pgxpool.Pool, table string) (*BookStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("database pool is required")
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid catalog table name %q", table)
	}
	return &BookStore{pool: pool, table: table}, nil
}

// GetByISBN returns the record with the given ISBN under one language
// variant, or models.ErrNotFound.
func (s *BookStore) GetByISBN(ctx context.Context, isbn, language string) (models.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE isbn = $1 AND language = $2", bookColumns, s.table)
	return s.getOne(ctx, query, isbn, language)
}

// GetByID returns the record with the given id, or models.ErrNotFound.
func (s *BookStore) GetByID(ctx context.Context, id uuid.UUID) (models.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", bookColumns, s.table)
	return s.getOne(ctx, query, id)
}

func (s *BookStore) getOne(ctx context.Context, query string, args ...any) (models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var b models.Book
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Description, &b.CoverURL,
		&b.Language, &b.Genre, &b.Quantity, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Book{}, models.ErrNotFound
		}
		return models.Book{}, fmt.Errorf("failed to query book: %w", err)
	}
	return b, nil
}

// List returns up to limit records in one language variant ordered by
// title, skipping offset rows.
func (s *BookStore) List(ctx context.Context, language string, limit, offset int) ([]models.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE language = $1 ORDER BY title, id LIMIT $2 OFFSET $3", bookColumns, s.table)
	rows, err := s.pool.Query(ctx, query, language, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(
			&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Description, &b.CoverURL,
			&b.Language, &b.Genre, &b.Quantity, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}
	return books, nil
}

// Count returns the number of records in one language variant.
func (s *BookStore) Count(ctx context.Context, language string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE language = $1", s.table)
	if err := s.pool.QueryRow(ctx, query, language).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}

// Upsert inserts the record or, when its (isbn, language) pair already
// exists, refreshes the stored fields. The row id is never changed on
// update, so derived prices for id-seeded records stay stable.
func (s *BookStore) Upsert(ctx context.Context, book *models.Book) error {
	if book == nil {
		return fmt.Errorf("book is required")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (isbn, title, author, description, cover_url, language, genre, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (isbn, language) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			description = EXCLUDED.description,
			cover_url = EXCLUDED.cover_url,
			genre = EXCLUDED.genre,
			quantity = EXCLUDED.quantity,
			updated_at = now()
		RETURNING id`, s.table)

	err := s.pool.QueryRow(ctx, query,
		book.ISBN, book.Title, book.Author, book.Description, book.CoverURL,
		book.Language, book.Genre, book.Quantity,
	).Scan(&book.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert book %q: %w", book.ISBN, err)
	}
	return nil
}
