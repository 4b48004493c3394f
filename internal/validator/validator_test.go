package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckKeepsFirstFailure(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(NotBlank(" "), "title", "must be provided")
	v.Check(MaxChars("", 0), "title", "must not be more than 0 characters")
	v.Check(false, "title", "second failure")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"title": "must be provided"}, v.Errors)
}

func TestMerge(t *testing.T) {
	book := New()
	book.AddError("title", "must be provided")

	v := New()
	v.Merge("books[1]", book)
	assert.Equal(t, map[string]string{"books[1].title": "must be provided"}, v.Errors)
}

func TestMaxCharsCountsRunes(t *testing.T) {
	assert.True(t, MaxChars("Snabba cash", 11))
	assert.True(t, MaxChars("åäö", 3))
	assert.False(t, MaxChars("åäöx", 3))
}
