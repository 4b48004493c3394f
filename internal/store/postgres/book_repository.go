package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"libraryapi/internal/domain/book"
	"libraryapi/internal/query"
	"libraryapi/internal/store/repositories"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tableBooks = "books"

	colAuthorID    = "author_id"
	colTitle       = "title"
	colDescription = "description"
)

// bookColumns maps sortable book fields to columns.
var bookColumns = map[string]sortColumn{
	"Id":          {name: colID},
	"Title":       {name: colTitle, folded: true},
	"Description": {name: colDescription, folded: true},
	"AuthorId":    {name: colAuthorID},
}

// BookRepository implements repositories.BookRepository on PostgreSQL.
type BookRepository struct {
	db querier
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{db: db}
}

// BooksForAuthor returns the author's books, ordered by id until the caller
// sorts them.
func (r *BookRepository) BooksForAuthor(authorID uuid.UUID, filter repositories.BookFilter) query.Query[*book.Book] {
	return newSelectQuery(r.db, booksDataset(authorID, filter), bookColumns, scanBook)
}

func booksDataset(authorID uuid.UUID, filter repositories.BookFilter) *goqu.SelectDataset {
	ds := dialect.From(tableBooks).
		Select(colID, colAuthorID, colTitle, colDescription).
		Where(goqu.C(colAuthorID).Eq(authorID.String())).
		Order(goqu.I(colID).Asc())

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(search)
		ds = ds.Where(goqu.Or(
			goqu.C(colTitle).ILike(pattern),
			goqu.C(colDescription).ILike(pattern),
		))
	}
	return ds
}

// FindForAuthor finds one book of an author.
func (r *BookRepository) FindForAuthor(ctx context.Context, authorID, bookID uuid.UUID) (*book.Book, error) {
	stmt, args, err := dialect.From(tableBooks).Prepared(true).
		Select(colID, colAuthorID, colTitle, colDescription).
		Where(goqu.Ex{colID: bookID.String(), colAuthorID: authorID.String()}).
		ToSQL()
	if err != nil {
		return nil, err
	}

	b, err := scanBook(r.db.QueryRow(ctx, stmt, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return b, err
}

func (r *BookRepository) Insert(ctx context.Context, b *book.Book) error {
	stmt, args, err := dialect.Insert(tableBooks).Prepared(true).Rows(bookRecord(b)).ToSQL()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, stmt, args...)
	return err
}

// Update replaces title and description of a stored book.
func (r *BookRepository) Update(ctx context.Context, b *book.Book) error {
	stmt, args, err := dialect.Update(tableBooks).Prepared(true).
		Set(goqu.Record{colTitle: b.Title, colDescription: nullable(b.Description)}).
		Where(goqu.Ex{colID: b.ID.String(), colAuthorID: b.AuthorID.String()}).
		ToSQL()
	if err != nil {
		return err
	}
	return r.execAffecting(ctx, stmt, args)
}

func (r *BookRepository) Delete(ctx context.Context, authorID, bookID uuid.UUID) error {
	stmt, args, err := dialect.Delete(tableBooks).Prepared(true).
		Where(goqu.Ex{colID: bookID.String(), colAuthorID: authorID.String()}).
		ToSQL()
	if err != nil {
		return err
	}
	return r.execAffecting(ctx, stmt, args)
}

func (r *BookRepository) execAffecting(ctx context.Context, stmt string, args []any) error {
	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func bookRecord(b *book.Book) goqu.Record {
	return goqu.Record{
		colID:          b.ID.String(),
		colAuthorID:    b.AuthorID.String(),
		colTitle:       b.Title,
		colDescription: nullable(b.Description),
	}
}

// nullable stores an empty string as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// scanBook scans a single row into a book domain object
func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	var description sql.NullString

	if err := row.Scan(&b.ID, &b.AuthorID, &b.Title, &description); err != nil {
		return nil, err
	}
	if description.Valid {
		b.Description = description.String
	}
	return &b, nil
}
