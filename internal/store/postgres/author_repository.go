package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libraryapi/internal/domain/author"
	"libraryapi/internal/query"
	"libraryapi/internal/store/repositories"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tableAuthors = "authors"

	colID          = "id"
	colFirstName   = "first_name"
	colLastName    = "last_name"
	colDateOfBirth = "date_of_birth"
	colGenre       = "genre"
)

// authorColumns maps sortable author fields to columns.
var authorColumns = map[string]sortColumn{
	"Id":          {name: colID},
	"FirstName":   {name: colFirstName, folded: true},
	"LastName":    {name: colLastName, folded: true},
	"DateOfBirth": {name: colDateOfBirth},
	"Genre":       {name: colGenre, folded: true},
}

// AuthorRepository implements repositories.AuthorRepository on PostgreSQL.
type AuthorRepository struct {
	db querier
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *pgxpool.Pool) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// Authors returns the filtered author collection, ordered by id until the
// caller sorts it.
func (r *AuthorRepository) Authors(filter repositories.AuthorFilter) query.Query[*author.Author] {
	return newSelectQuery(r.db, authorsDataset(filter), authorColumns, scanAuthor)
}

func authorsDataset(filter repositories.AuthorFilter) *goqu.SelectDataset {
	ds := dialect.From(tableAuthors).
		Select(colID, colFirstName, colLastName, colDateOfBirth, colGenre).
		Order(goqu.I(colID).Asc())

	if genre := strings.TrimSpace(filter.Genre); genre != "" {
		ds = ds.Where(goqu.Func("lower", goqu.C(colGenre)).Eq(strings.ToLower(genre)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(search)
		ds = ds.Where(goqu.Or(
			goqu.C(colFirstName).ILike(pattern),
			goqu.C(colLastName).ILike(pattern),
			goqu.C(colGenre).ILike(pattern),
		))
	}
	return ds
}

// FindByID finds an author by ID. Books are not loaded.
func (r *AuthorRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	stmt, args, err := dialect.From(tableAuthors).Prepared(true).
		Select(colID, colFirstName, colLastName, colDateOfBirth, colGenre).
		Where(goqu.C(colID).Eq(id.String())).
		ToSQL()
	if err != nil {
		return nil, err
	}

	a, err := scanAuthor(r.db.QueryRow(ctx, stmt, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return a, err
}

// FindByIDs returns the authors matching ids, in no particular order.
func (r *AuthorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*author.Author, error) {
	if len(ids) == 0 {
		return []*author.Author{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	stmt, args, err := dialect.From(tableAuthors).Prepared(true).
		Select(colID, colFirstName, colLastName, colDateOfBirth, colGenre).
		Where(goqu.C(colID).In(keys)).
		ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := []*author.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// Exists reports whether an author with id is stored.
func (r *AuthorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	stmt, args, err := dialect.From(tableAuthors).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(colID).Eq(id.String())).
		ToSQL()
	if err != nil {
		return false, err
	}

	var n int64
	if err := r.db.QueryRow(ctx, stmt, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert stores the author and the books attached to it. Callers wanting
// atomicity run it inside a transaction.
func (r *AuthorRepository) Insert(ctx context.Context, a *author.Author) error {
	stmt, args, err := dialect.Insert(tableAuthors).Prepared(true).
		Rows(goqu.Record{
			colID:          a.ID.String(),
			colFirstName:   a.FirstName,
			colLastName:    a.LastName,
			colDateOfBirth: a.DateOfBirth,
			colGenre:       a.Genre,
		}).
		ToSQL()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert author: %w", err)
	}

	if len(a.Books) == 0 {
		return nil
	}
	rows := make([]any, len(a.Books))
	for i, b := range a.Books {
		rows[i] = bookRecord(b)
	}
	stmt, args, err = dialect.Insert(tableBooks).Prepared(true).Rows(rows...).ToSQL()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert author books: %w", err)
	}
	return nil
}

// Delete removes the author; its books go with it through the foreign key.
func (r *AuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	stmt, args, err := dialect.Delete(tableAuthors).Prepared(true).
		Where(goqu.C(colID).Eq(id.String())).
		ToSQL()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// scanAuthor scans a single row into an author domain object
func scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	if err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.Genre); err != nil {
		return nil, err
	}
	return &a, nil
}
