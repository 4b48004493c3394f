package author

import (
	"time"

	"libraryapi/internal/domain/book"
	"libraryapi/internal/validator"

	"github.com/google/uuid"
)

const (
	MaxNameLength  = 50
	MaxGenreLength = 50
)

// Author is a writer and the books attributed to them. Books is only
// populated when an author is created together with its books.
type Author struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Genre       string
	Books       []*book.Book
}

// NewAuthor creates an author with a fresh ID.
func NewAuthor(firstName, lastName string, dateOfBirth time.Time, genre string) *Author {
	return &Author{
		ID:          uuid.New(),
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dateOfBirth,
		Genre:       genre,
	}
}

func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Age is the number of whole years between the date of birth and now.
func (a *Author) Age(now time.Time) int {
	dob := a.DateOfBirth.In(now.Location())
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// AddBook attaches b to the author.
func (a *Author) AddBook(b *book.Book) {
	b.AuthorID = a.ID
	a.Books = append(a.Books, b)
}

func ValidateAuthor(v *validator.Validator, a *Author, now time.Time) {
	v.Check(validator.NotBlank(a.FirstName), "firstName", "must be provided")
	v.Check(validator.MaxChars(a.FirstName, MaxNameLength), "firstName", "must not be more than 50 characters long")

	v.Check(validator.NotBlank(a.LastName), "lastName", "must be provided")
	v.Check(validator.MaxChars(a.LastName, MaxNameLength), "lastName", "must not be more than 50 characters long")

	v.Check(validator.NotBlank(a.Genre), "genre", "must be provided")
	v.Check(validator.MaxChars(a.Genre, MaxGenreLength), "genre", "must not be more than 50 characters long")

	v.Check(!a.DateOfBirth.IsZero(), "dateOfBirth", "must be provided")
	v.Check(!a.DateOfBirth.After(now), "dateOfBirth", "must not be in the future")
}
