package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/radreads/internal/entities"
)

const searchResultLimit = 50

type BooksController struct {
	reader BookReader
}

func NewBooksController(reader BookReader) *BooksController {
	return &BooksController{
		reader: reader,
	}
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.reader.GetBookByID(id)
	if err != nil {
		respondAppError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) SearchBooks(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}

	books, err := controller.reader.SearchBooks(query, searchResultLimit)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	if books == nil {
		books = []entities.Book{}
	}

	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}
