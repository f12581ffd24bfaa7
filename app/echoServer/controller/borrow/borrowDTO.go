package borrow

import "time"

type BorrowBookReq struct {
	Book     string    `json:"book" validate:"required,uuid"`
	Quantity *int      `json:"quantity" validate:"required,gte=1"`
	DueDate  time.Time `json:"dueDate" validate:"required"`
}
