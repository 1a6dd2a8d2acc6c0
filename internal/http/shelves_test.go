package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/radreads/internal/entities"
)

func duneAttrs() entities.BookAttributes {
	return entities.BookAttributes{
		ExternalID: "gb:dune",
		Title:      "Dune",
		Authors:    []string{"Frank Herbert"},
		PageCount:  412,
	}
}

func hyperionAttrs() entities.BookAttributes {
	return entities.BookAttributes{
		ExternalID: "gb:hyperion",
		Title:      "Hyperion",
		Authors:    []string{"Dan Simmons"},
	}
}

func listTitles(t *testing.T, app *testApp, path, token string) []string {
	t.Helper()
	w := app.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[ShelfListResponse](t, w)
	titles := make([]string, 0, len(resp.Books))
	for _, b := range resp.Books {
		titles = append(titles, b.Title)
	}
	assert.Equal(t, resp.Count, len(titles))
	return titles
}

func TestShelfController_AddToDefaultShelf(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	w := app.do(t, http.MethodPost, "/api/shelves/to-read", token, duneAttrs())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[ShelfBookResponse](t, w)
	assert.Equal(t, "Want to Read", resp.Shelf)
	require.NotNil(t, resp.Book)
	assert.Equal(t, "Dune", resp.Book.Title)
	assert.Equal(t, []string{"Frank Herbert"}, []string(resp.Book.Authors))

	assert.Equal(t, []string{"Dune"}, listTitles(t, app, "/api/shelves/to-read", token))
}

func TestShelfController_TBRAlias(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	w := app.do(t, http.MethodPost, "/api/shelves/tbr", token, duneAttrs())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, []string{"Dune"}, listTitles(t, app, "/api/shelves/to-read", token))
	assert.Equal(t, []string{"Dune"}, listTitles(t, app, "/api/shelves/tbr", token))
}

func TestShelfController_DuplicateIsConflict(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/shelves/read", token, duneAttrs()).Code)

	w := app.do(t, http.MethodPost, "/api/shelves/read", token, duneAttrs())
	assert.Equal(t, http.StatusConflict, w.Code)

	resp := decode[ErrorResponse](t, w)
	assert.Equal(t, "CONFLICT", resp.Code)
	assert.Contains(t, resp.Error, "Dune")
	assert.Contains(t, resp.Error, "Read")
	assert.NotContains(t, resp.Error, "UNIQUE")
}

func TestShelfController_DroppedAlsoMarksCurrent(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	w := app.do(t, http.MethodPost, "/api/shelves/dropped", token, duneAttrs())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, []string{"Dune"}, listTitles(t, app, "/api/shelves/dropped", token))
	assert.Equal(t, []string{"Dune"}, listTitles(t, app, "/api/shelves/current", token))
}

func TestShelfController_UnknownKind(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	w := app.do(t, http.MethodPost, "/api/shelves/wishlist", token, duneAttrs())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/shelves/wishlist", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShelfController_InvalidBookBody(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	w := app.do(t, http.MethodPost, "/api/shelves/read", token, map[string]any{"title": "No external id"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[ErrorResponse](t, w)
	assert.Equal(t, "VALIDATION", resp.Code)
	assert.Equal(t, map[string]any{"ExternalID": "required"}, resp.Details)
}

func TestShelfController_CustomShelfFlow(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	w := app.do(t, http.MethodPost, "/api/shelves", token, ShelfNameRequest{Name: "Favorites"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Favorites", decode[entities.CustomShelf](t, w).Name)

	w = app.do(t, http.MethodPost, "/api/shelves/custom/Favorites", token, duneAttrs())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = app.do(t, http.MethodPost, "/api/shelves/custom/Favorites", token, hyperionAttrs())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, []string{"Dune", "Hyperion"}, listTitles(t, app, "/api/shelves/custom/Favorites", token))

	// Adding to a custom shelf also places the book on Read
	assert.Equal(t, []string{"Dune", "Hyperion"}, listTitles(t, app, "/api/shelves/read", token))

	w = app.do(t, http.MethodPost, "/api/shelves/custom/Favorites", token, duneAttrs())
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodGet, "/api/shelves/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, w)["count"])
}

func TestShelfController_CustomShelfNotFound(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	w := app.do(t, http.MethodPost, "/api/shelves/custom/Nope", token, duneAttrs())
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/api/shelves/custom/Nope", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShelfController_CustomShelvesArePerUser(t *testing.T) {
	app := setupTestApp(t)
	alice := app.signup(t, "alice@example.com")
	bob := app.signup(t, "bob@example.com")

	for _, token := range []string{alice, bob} {
		w := app.do(t, http.MethodPost, "/api/shelves", token, ShelfNameRequest{Name: "Favorites"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/shelves/custom/Favorites", alice, duneAttrs()).Code)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/shelves/custom/Favorites", bob, hyperionAttrs()).Code)

	assert.Equal(t, []string{"Dune"}, listTitles(t, app, "/api/shelves/custom/Favorites", alice))
	assert.Equal(t, []string{"Hyperion"}, listTitles(t, app, "/api/shelves/custom/Favorites", bob))
}

func TestShelfController_CreateCustomShelf_Duplicate(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/shelves", token, ShelfNameRequest{Name: "Sci-Fi"}).Code)

	w := app.do(t, http.MethodPost, "/api/shelves", token, ShelfNameRequest{Name: "Sci-Fi"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "Sci-Fi")
}

func TestShelfController_CreateCustomShelf_InvalidName(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	for _, name := range []string{"", "   ", "a/b"} {
		w := app.do(t, http.MethodPost, "/api/shelves", token, ShelfNameRequest{Name: name})
		assert.Equal(t, http.StatusBadRequest, w.Code, "name %q", name)
	}
}

func TestShelfController_RenameCustomShelf(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/shelves", token, ShelfNameRequest{Name: "Faves"}).Code)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/shelves/custom/Faves", token, duneAttrs()).Code)

	w := app.do(t, http.MethodPut, "/api/shelves/custom/Faves", token, ShelfNameRequest{Name: "Favorites"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Favorites", decode[map[string]any](t, w)["name"])

	// Membership follows the shelf
	assert.Equal(t, []string{"Dune"}, listTitles(t, app, "/api/shelves/custom/Favorites", token))

	w = app.do(t, http.MethodGet, "/api/shelves/custom/Faves", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShelfController_RenameCustomShelf_Legacy(t *testing.T) {
	app := setupTestApp(t)
	token := app.signup(t, "reader@example.com")

	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/shelves", token, ShelfNameRequest{Name: "Faves"}).Code)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/shelves", token, ShelfNameRequest{Name: "Classics"}).Code)

	w := app.do(t, http.MethodPut, "/api/shelves/custom/Faves/Favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodPut, "/api/shelves/custom/Favorites/Classics", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPut, "/api/shelves/custom/Missing/Other", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
