package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"libraryapi/internal/config"
	"libraryapi/internal/http/handlers"
	middlewarex "libraryapi/internal/http/middleware"
	"libraryapi/internal/query"
	"libraryapi/internal/services/library"
	"libraryapi/internal/store/memory"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const baseURL = "http://library.test"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	registry, err := library.NewRegistry()
	require.NoError(t, err)
	hm, err := handlers.NewHypermedia(baseURL)
	require.NoError(t, err)

	store := memory.New()
	svc := library.NewService(store.Authors(), store.Books(), store, nil, registry)
	_, err = svc.Seed(context.Background())
	require.NoError(t, err)

	cfg := config.Cfg{
		App:    config.AppCfg{Env: "test", BaseURL: baseURL},
		Sec:    config.SecurityCfg{AllowedOrigins: []string{"*"}},
		Paging: config.PagingCfg{DefaultSize: 10, MaxSize: 20},
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRouter(ctx, RouterDependencies{Config: cfg, Library: svc, Hypermedia: hm})
}

func do(t *testing.T, h http.Handler, method, target, body, accept string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func pagination(t *testing.T, rec *httptest.ResponseRecorder) query.PaginationMetadata {
	t.Helper()
	var meta query.PaginationMetadata
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("X-Pagination")), &meta))
	return meta
}

func path(location string) string {
	return strings.TrimPrefix(location, baseURL)
}

func authorIDByName(t *testing.T, h http.Handler, name string) string {
	t.Helper()
	rec := do(t, h, http.MethodGet, "/api/authors?fields=id,name", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, a := range decode[[]map[string]any](t, rec) {
		if a["name"] == name {
			return a["id"].(string)
		}
	}
	t.Fatalf("author %q not found", name)
	return ""
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, rec)["status"])
}

func TestListAuthors(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/authors", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	authors := decode[[]map[string]any](t, rec)
	require.Len(t, authors, 7)
	assert.Equal(t, "Douglas Adams", authors[0]["name"])
	assert.NotContains(t, authors[0], "links")

	meta := pagination(t, rec)
	assert.Equal(t, 7, meta.TotalCount)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Empty(t, meta.PreviousPageLink)
	assert.Empty(t, meta.NextPageLink)
}

func TestListAuthorsPaginationHeaderLinks(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/authors?pageSize=2&pageNumber=2&categoryFilter=", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	meta := pagination(t, rec)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 4, meta.TotalPages)
	assert.Equal(t, baseURL+"/api/authors?orderBy=Name&pageNumber=1&pageSize=2", meta.PreviousPageLink)
	assert.Equal(t, baseURL+"/api/authors?orderBy=Name&pageNumber=3&pageSize=2", meta.NextPageLink)
}

func TestListAuthorsShapesFields(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/authors?fields=name,%20ID&categoryFilter=Thriller", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), `[{"name":"James Ellroy","id":"`), rec.Body.String())

	authors := decode[[]map[string]any](t, rec)
	require.Len(t, authors, 2)
	for _, a := range authors {
		assert.Len(t, a, 2)
	}
}

func TestListAuthorsClientErrors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name    string
		target  string
		wantErr string
	}{
		{"unknown sort field", "/api/authors?orderBy=Height", `invalid sort field "Height"`},
		{"unknown shaped field", "/api/authors?fields=id,shoeSize", `unknown field "shoeSize"`},
		{"page zero", "/api/authors?pageNumber=0", `invalid pageNumber "0": must be a positive integer`},
		{"non numeric page size", "/api/authors?pageSize=ten", `invalid pageSize "ten": must be a positive integer`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "", "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantErr, decode[map[string]any](t, rec)["error"])
		})
	}
}

func TestUnsupportedMediaTypeIsNotAcceptable(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/api/authors", "", "application/xml")
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestListAuthorsHypermedia(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/authors?pageSize=2&fields=id,name", "", middlewarex.MediaTypeHATEOAS)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, middlewarex.MediaTypeHATEOAS, rec.Header().Get("Content-Type"))

	var body struct {
		Value []map[string]any `json:"value"`
		Links []query.Link     `json:"links"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Value, 2)

	first := body.Value[0]
	links, ok := first["links"].([]any)
	require.True(t, ok)
	require.Len(t, links, 4)
	self := links[0].(map[string]any)
	assert.Equal(t, "self", self["rel"])
	assert.Equal(t, baseURL+"/api/authors/"+first["id"].(string)+"?fields=id%2Cname", self["href"])

	require.Len(t, body.Links, 2)
	assert.Equal(t, "self", body.Links[0].Rel)
	assert.Equal(t, "nextPage", body.Links[1].Rel)
	assert.Equal(t, baseURL+"/api/authors?fields=id%2Cname&orderBy=Name&pageNumber=2&pageSize=2", body.Links[1].Href)

	meta := pagination(t, rec)
	assert.Empty(t, meta.NextPageLink)
}

func TestRoot(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api", "", "application/json")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api", "", middlewarex.MediaTypeHATEOAS)
	require.Equal(t, http.StatusOK, rec.Code)
	links := decode[[]query.Link](t, rec)
	require.Len(t, links, 3)
	assert.Equal(t, []query.Link{
		{Href: baseURL + "/api", Rel: "self", Method: http.MethodGet},
		{Href: baseURL + "/api/authors", Rel: "authors", Method: http.MethodGet},
		{Href: baseURL + "/api/authors", Rel: "create_authors", Method: http.MethodPost},
	}, links)
}

func TestAuthorLifecycle(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/authors", `{
		"firstName": "Ursula", "lastName": "Le Guin", "dateOfBirth": "1929-10-21T00:00:00Z", "genre": "Fantasy",
		"books": [{"title": "A Wizard of Earthsea", "description": "The first Earthsea novel."}]
	}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "Ursula Le Guin", created["name"])
	location := rec.Header().Get("Location")
	assert.Equal(t, baseURL+"/api/authors/"+created["id"].(string), location)

	rec = do(t, h, http.MethodGet, path(location)+"?fields=genre", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"genre":"Fantasy"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, path(location)+"/books", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = do(t, h, http.MethodPost, path(location), "", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodDelete, path(location), "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, path(location), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodPost, path(location), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodDelete, path(location), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAuthorRejectsBadInput(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/authors", `{"firstName": "", "lastName": "X", "dateOfBirth": "1929-10-21T00:00:00Z", "genre": "Fantasy"}`, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode[map[string]map[string]string](t, rec)["error"]
	assert.Equal(t, "must be provided", errs["firstName"])

	rec = do(t, h, http.MethodPost, "/api/authors", `{"firstName": "A", "shoeSize": 43}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/authors", `{"firstName": "A"} {}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/authors", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "body must not be empty", decode[map[string]any](t, rec)["error"])
}

func TestUnknownAuthorIsNotFound(t *testing.T) {
	h := newTestRouter(t)

	for _, target := range []string{
		"/api/authors/7f9c1f26-5a36-4f36-8c0c-7b6f4b1f0a11",
		"/api/authors/not-a-uuid",
		"/api/authors/7f9c1f26-5a36-4f36-8c0c-7b6f4b1f0a11/books",
	} {
		rec := do(t, h, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestBookLifecycle(t *testing.T) {
	h := newTestRouter(t)
	books := "/api/authors/" + authorIDByName(t, h, "Jens Lapidus") + "/books"

	rec := do(t, h, http.MethodGet, books, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Easy Money", list[0]["title"])

	rec = do(t, h, http.MethodPost, books, `{"title": "Never Fuck Up", "description": "The second part of the Stockholm Noir trilogy."}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	book := path(rec.Header().Get("Location"))
	assert.True(t, strings.HasPrefix(book, books+"/"), book)

	rec = do(t, h, http.MethodPost, books, `{"title": "Same", "description": "same"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPut, book, `{"title": "Never Screw Up"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPut, book, `{"title": "Never Screw Up", "description": "Stockholm Noir, part two."}`, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodPatch, book, `{"title": "Life Deluxe"}`, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, book+"?fields=title,description", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"title":"Life Deluxe","description":"Stockholm Noir, part two."}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, books+"?orderBy=title desc&fields=title", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"title":"Life Deluxe"},{"title":"Easy Money"}]`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, book, "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, book, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodPut, book, `{"title": "Gone", "description": "Really gone."}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookHypermediaLinks(t *testing.T) {
	h := newTestRouter(t)
	authorID := authorIDByName(t, h, "Neil Gaiman")

	rec := do(t, h, http.MethodGet, "/api/authors/"+authorID+"/books", "", middlewarex.MediaTypeHATEOAS)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Value []struct {
			ID    string       `json:"id"`
			Links []query.Link `json:"links"`
		} `json:"value"`
		Links []query.Link `json:"links"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Value, 1)

	item := body.Value[0]
	bookURI := baseURL + "/api/authors/" + authorID + "/books/" + item.ID
	assert.Equal(t, []query.Link{
		{Href: bookURI, Rel: "self", Method: http.MethodGet},
		{Href: bookURI, Rel: "delete_book", Method: http.MethodDelete},
		{Href: bookURI, Rel: "update_book", Method: http.MethodPut},
		{Href: bookURI, Rel: "partially_update_book", Method: http.MethodPatch},
	}, item.Links)
	require.Len(t, body.Links, 1)
	assert.Equal(t, baseURL+"/api/authors/"+authorID+"/books?orderBy=Title&pageNumber=1&pageSize=10", body.Links[0].Href)
}

func TestAuthorCollections(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/authorcollections", `[
		{"firstName": "Agatha", "lastName": "Christie", "dateOfBirth": "1890-09-15T00:00:00Z", "genre": "Crime"},
		{"firstName": "Arthur", "lastName": "Conan Doyle", "dateOfBirth": "1859-05-22T00:00:00Z", "genre": "Crime"}
	]`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[[]library.AuthorDTO](t, rec)
	require.Len(t, created, 2)

	location := rec.Header().Get("Location")
	assert.Equal(t, baseURL+"/api/authorcollections/("+created[0].ID.String()+","+created[1].ID.String()+")", location)

	rec = do(t, h, http.MethodGet, path(location), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]library.AuthorDTO](t, rec)
	require.Len(t, got, 2)
	assert.Equal(t, "Agatha Christie", got[0].Name)
	assert.Equal(t, "Arthur Conan Doyle", got[1].Name)

	rec = do(t, h, http.MethodGet, "/api/authorcollections/(7f9c1f26-5a36-4f36-8c0c-7b6f4b1f0a11)", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/authorcollections/(nope)", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/authorcollections", `[
		{"firstName": "Valid", "lastName": "Author", "dateOfBirth": "1900-01-01T00:00:00Z", "genre": "Crime"},
		{"firstName": "", "lastName": "Author", "dateOfBirth": "1900-01-01T00:00:00Z", "genre": "Crime"}
	]`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/authors?categoryFilter=Crime", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/publishers", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/authors", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
