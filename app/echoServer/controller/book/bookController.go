package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sumu9897/LibraryNext/apperr"
	booksvc "github.com/sumu9897/LibraryNext/service/book"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/books
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "validation error",
			"error":   err.Error(),
		})
	}

	b, err := h.Svc.Create(c.Request().Context(), booksvc.CreateInput{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		ISBN:        req.ISBN,
		Description: req.Description,
		Copies:      *req.Copies,
	})
	if err != nil {
		return h.fail(c, err, "book create")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Book created successfully",
		"data":    b,
	})
}

// GET /api/books
func (h *Controller) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "limit must be a positive integer"})
		}
		limit = n
	}

	books, err := h.Svc.List(c.Request().Context(), booksvc.ListInput{
		Genre:   c.QueryParam("filter"),
		SortBy:  c.QueryParam("sortBy"),
		SortDir: c.QueryParam("sort"),
		Limit:   limit,
	})
	if err != nil {
		return h.fail(c, err, "book list")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Books retrieved successfully",
		"data":    books,
	})
}

// GET /api/books/:bookId
func (h *Controller) Detail(c echo.Context) error {
	id, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid book id"})
	}

	b, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "book detail")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Book retrieved successfully",
		"data":    b,
	})
}

// PUT /api/books/:bookId
func (h *Controller) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid book id"})
	}

	var req UpdateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "validation error",
			"error":   err.Error(),
		})
	}

	b, err := h.Svc.Update(c.Request().Context(), id, booksvc.UpdateInput{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		ISBN:        req.ISBN,
		Description: req.Description,
		Copies:      req.Copies,
	})
	if err != nil {
		return h.fail(c, err, "book update")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Book updated successfully",
		"data":    b,
	})
}

// DELETE /api/books/:bookId
func (h *Controller) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid book id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "book delete")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Book deleted successfully",
		"data":    nil,
	})
}

func (h *Controller) fail(c echo.Context, err error, op string) error {
	switch apperr.Code(err) {
	case apperr.ErrValidationFailed:
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
	case apperr.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
	case apperr.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": err.Error()})
	case apperr.ErrEmptyResult:
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": err.Error(), "data": nil})
	default:
		h.Log.Error(op+" error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal Server Error"})
	}
}
