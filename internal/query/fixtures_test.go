package query

import (
	"context"
	"time"
)

type writer struct {
	ID          int
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Genre       string
}

type writerDTO struct {
	ID    int
	Name  string
	Age   int
	Genre string
}

var writerSchema = MustSchema(
	Ordered("Id", func(w writer) int { return w.ID }),
	Ordered("FirstName", func(w writer) string { return w.FirstName }),
	Ordered("LastName", func(w writer) string { return w.LastName }),
	Time("DateOfBirth", func(w writer) time.Time { return w.DateOfBirth }),
	Ordered("Genre", func(w writer) string { return w.Genre }),
)

var writerDTOSchema = MustSchema(
	Ordered("Id", func(w writerDTO) int { return w.ID }),
	Ordered("Name", func(w writerDTO) string { return w.Name }),
	Ordered("Age", func(w writerDTO) int { return w.Age }),
	Ordered("Genre", func(w writerDTO) string { return w.Genre }),
)

var writerMapping = map[string]PropertyMappingValue{
	"Id":    {DestinationFields: []string{"Id"}},
	"Genre": {DestinationFields: []string{"Genre"}},
	"Age":   {DestinationFields: []string{"DateOfBirth"}, Revert: true},
	"Name":  {DestinationFields: []string{"FirstName", "LastName"}},
}

func mustRegistry() *Registry {
	r, err := NewRegistry(Register[writerDTO, writer](writerMapping, writerSchema))
	if err != nil {
		panic(err)
	}
	return r
}

func mustMapping() PropertyMapping {
	m, err := Lookup[writerDTO, writer](mustRegistry())
	if err != nil {
		panic(err)
	}
	return m
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func writers() []writer {
	return []writer{
		{ID: 1, FirstName: "Stephen", LastName: "King", DateOfBirth: day(1947, 9, 21), Genre: "Horror"},
		{ID: 2, FirstName: "George", LastName: "Martin", DateOfBirth: day(1948, 9, 20), Genre: "Fantasy"},
		{ID: 3, FirstName: "Neil", LastName: "Gaiman", DateOfBirth: day(1960, 11, 10), Genre: "Fantasy"},
		{ID: 4, FirstName: "Jens", LastName: "Lapidus", DateOfBirth: day(1974, 5, 24), Genre: "Thriller"},
		{ID: 5, FirstName: "James", LastName: "Ellroy", DateOfBirth: day(1948, 3, 4), Genre: "Thriller"},
	}
}

func ids(items []writer) []int {
	out := make([]int, len(items))
	for i, w := range items {
		out[i] = w.ID
	}
	return out
}

type orderCall struct {
	field      string
	descending bool
}

// recordingQuery remembers OrderBy calls and serves a fixed number of items.
type recordingQuery struct {
	calls   *[]orderCall
	total   int
	fetches *int
}

func newRecordingQuery(total int) *recordingQuery {
	return &recordingQuery{calls: &[]orderCall{}, total: total, fetches: new(int)}
}

func (q *recordingQuery) OrderBy(field string, descending bool) (Query[int], error) {
	*q.calls = append(*q.calls, orderCall{field, descending})
	return q, nil
}

func (q *recordingQuery) Count(context.Context) (int, error) { return q.total, nil }

func (q *recordingQuery) Fetch(_ context.Context, offset, limit int) ([]int, error) {
	*q.fetches++
	var out []int
	for i := offset; i < q.total && len(out) < limit; i++ {
		out = append(out, i)
	}
	return out, nil
}
