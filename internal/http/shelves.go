package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/radreads/internal/entities"
)

// ShelfNameRequest carries a custom shelf name for create and rename.
type ShelfNameRequest struct {
	Name string `json:"name" form:"name" binding:"required,shelfname"`
}

// ShelfBookResponse is returned after a book is placed on a shelf.
type ShelfBookResponse struct {
	Shelf string         `json:"shelf"`
	Book  *entities.Book `json:"book"`
}

// ShelfListResponse lists the books on one shelf in the order they were added.
type ShelfListResponse struct {
	Shelf string          `json:"shelf"`
	Books []entities.Book `json:"books"`
	Count int             `json:"count"`
}

type ShelfController struct {
	store ShelfStore
}

func NewShelfController(store ShelfStore) *ShelfController {
	return &ShelfController{store: store}
}

// RegisterRoutes mounts the shelf endpoints on an authenticated group.
func (sc *ShelfController) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/shelves", sc.CreateCustomShelf)
	api.GET("/shelves/me", sc.ListCustomShelves)
	api.GET("/shelves/defaults/me", sc.ListDefaultShelves)

	api.POST("/shelves/custom/:name", sc.AddToCustomShelf)
	api.GET("/shelves/custom/:name", sc.ListCustomShelf)
	api.PUT("/shelves/custom/:name", sc.RenameCustomShelf)
	api.PUT("/shelves/custom/:name/:new", sc.RenameCustomShelfLegacy)

	api.POST("/shelves/:kind", sc.AddToDefaultShelf)
	api.GET("/shelves/:kind", sc.ListDefaultShelf)
}

// defaultKindParam parses :kind and rejects anything that is not one of the
// four default shelves.
func defaultKindParam(c *gin.Context) (entities.ShelfKind, bool) {
	kind, err := entities.ParseShelfKind(c.Param("kind"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return "", false
	}
	if !kind.IsDefault() {
		respondBadRequest(c, "custom shelves are addressed as /api/shelves/custom/:name")
		return "", false
	}
	return kind, true
}

// shelfNameParam reads a custom shelf name from the path.
func shelfNameParam(c *gin.Context, param string) (string, bool) {
	name := strings.TrimSpace(c.Param(param))
	if !IsValidShelfName(name) {
		respondBadRequest(c, "invalid shelf name")
		return "", false
	}
	return name, true
}

func (sc *ShelfController) AddToDefaultShelf(c *gin.Context) {
	kind, ok := defaultKindParam(c)
	if !ok {
		return
	}

	var attrs entities.BookAttributes
	if err := c.ShouldBindJSON(&attrs); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := sc.store.AddToDefaultShelf(c.Request.Context(), GetUserID(c), kind, attrs)
	if err != nil {
		respondAppError(c, err, "add to default shelf")
		return
	}
	respondCreated(c, ShelfBookResponse{Shelf: kind.DisplayName(), Book: book})
}

func (sc *ShelfController) AddToCustomShelf(c *gin.Context) {
	name, ok := shelfNameParam(c, "name")
	if !ok {
		return
	}

	var attrs entities.BookAttributes
	if err := c.ShouldBindJSON(&attrs); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := sc.store.AddToCustomShelf(c.Request.Context(), GetUserID(c), name, attrs)
	if err != nil {
		respondAppError(c, err, "add to custom shelf")
		return
	}
	respondCreated(c, ShelfBookResponse{Shelf: name, Book: book})
}

func (sc *ShelfController) ListDefaultShelf(c *gin.Context) {
	kind, ok := defaultKindParam(c)
	if !ok {
		return
	}

	books, err := sc.store.ListDefaultShelf(c.Request.Context(), GetUserID(c), kind)
	if err != nil {
		respondAppError(c, err, "list default shelf")
		return
	}
	c.JSON(http.StatusOK, ShelfListResponse{Shelf: kind.DisplayName(), Books: books, Count: len(books)})
}

func (sc *ShelfController) ListCustomShelf(c *gin.Context) {
	name, ok := shelfNameParam(c, "name")
	if !ok {
		return
	}

	books, err := sc.store.ListCustomShelf(c.Request.Context(), GetUserID(c), name)
	if err != nil {
		respondAppError(c, err, "list custom shelf")
		return
	}
	c.JSON(http.StatusOK, ShelfListResponse{Shelf: name, Books: books, Count: len(books)})
}

func (sc *ShelfController) CreateCustomShelf(c *gin.Context) {
	var req ShelfNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	shelf, err := sc.store.CreateCustomShelf(c.Request.Context(), GetUserID(c), req.Name)
	if err != nil {
		respondAppError(c, err, "create custom shelf")
		return
	}
	respondCreated(c, shelf)
}

// RenameCustomShelf handles PUT /shelves/custom/:name with body {"name": new}.
func (sc *ShelfController) RenameCustomShelf(c *gin.Context) {
	oldName, ok := shelfNameParam(c, "name")
	if !ok {
		return
	}

	var req ShelfNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sc.rename(c, oldName, req.Name)
}

// RenameCustomShelfLegacy handles PUT /shelves/custom/:name/:new.
func (sc *ShelfController) RenameCustomShelfLegacy(c *gin.Context) {
	oldName, ok := shelfNameParam(c, "name")
	if !ok {
		return
	}
	newName, ok := shelfNameParam(c, "new")
	if !ok {
		return
	}

	sc.rename(c, oldName, newName)
}

func (sc *ShelfController) rename(c *gin.Context, oldName, newName string) {
	name, err := sc.store.RenameCustomShelf(c.Request.Context(), GetUserID(c), oldName, newName)
	if err != nil {
		respondAppError(c, err, "rename custom shelf")
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}

func (sc *ShelfController) ListCustomShelves(c *gin.Context) {
	shelves, err := sc.store.ListCustomShelves(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondAppError(c, err, "list custom shelves")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shelves": shelves, "count": len(shelves)})
}

func (sc *ShelfController) ListDefaultShelves(c *gin.Context) {
	shelves, err := sc.store.ListDefaultShelves(c.Request.Context(), GetUserID(c))
	if err != nil {
		respondAppError(c, err, "list default shelves")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shelves": shelves, "count": len(shelves)})
}
