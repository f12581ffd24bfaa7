package borrow

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sumu9897/LibraryNext/apperr"
	borrowsvc "github.com/sumu9897/LibraryNext/service/borrow"
)

type Controller struct {
	Svc borrowsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/borrow
func (h *Controller) Create(c echo.Context) error {
	var req BorrowBookReq
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
	bookID, err := uuid.Parse(req.Book)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid book id"})
	}

	rec, err := h.Svc.Create(c.Request().Context(), bookID, *req.Quantity, req.DueDate)
	if err != nil {
		switch apperr.Code(err) {
		case apperr.ErrValidationFailed:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
		case apperr.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Book not found"})
		case apperr.ErrInsufficientStock:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Not enough copies available"})
		default:
			h.Log.Error("borrow create error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal Server Error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Book borrowed successfully",
		"data":    rec,
	})
}

// DELETE /api/borrow/:borrowId
func (h *Controller) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("borrowId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid borrow id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		switch apperr.Code(err) {
		case apperr.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Borrow record not found"})
		default:
			h.Log.Error("borrow delete error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal Server Error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Book returned successfully",
		"data":    nil,
	})
}

// GET /api/borrow
func (h *Controller) Summary(c echo.Context) error {
	rows, err := h.Svc.Summary(c.Request().Context())
	if err != nil {
		switch apperr.Code(err) {
		case apperr.ErrEmptyResult:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "No borrow records found"})
		default:
			h.Log.Error("borrow summary error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal Server Error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Borrow summary retrieved successfully",
		"data":    rows,
	})
}
