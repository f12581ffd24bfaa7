package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/sumu9897/LibraryNext/app/echoServer/controller/book"
	"github.com/sumu9897/LibraryNext/app/echoServer/controller/borrow"
)

type C struct {
	Book   *book.Controller
	Borrow *borrow.Controller
}

func Register(e *echo.Echo, c C) {
	api := e.Group("/api")

	// Books
	api.POST("/books", c.Book.Create)
	api.GET("/books", c.Book.List)
	api.GET("/books/:bookId", c.Book.Detail)
	api.PUT("/books/:bookId", c.Book.Update)
	api.DELETE("/books/:bookId", c.Book.Delete)

	// Borrows
	api.POST("/borrow", c.Borrow.Create)
	api.GET("/borrow", c.Borrow.Summary)
	api.DELETE("/borrow/:borrowId", c.Borrow.Delete)
}
