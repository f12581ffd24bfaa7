package book

type CreateBookReq struct {
	Title       string `json:"title" validate:"required,min=1,max=20"`
	Author      string `json:"author" validate:"required,min=1,max=20"`
	Genre       string `json:"genre" validate:"required,genre"`
	ISBN        string `json:"isbn" validate:"required"`
	Description string `json:"description" validate:"omitempty,min=8,max=120"`
	Copies      *int   `json:"copies" validate:"required,gte=0"`
}

type UpdateBookReq struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=20"`
	Author      *string `json:"author" validate:"omitempty,min=1,max=20"`
	Genre       *string `json:"genre" validate:"omitempty,genre"`
	ISBN        *string `json:"isbn" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=8,max=120"`
	Copies      *int    `json:"copies" validate:"omitempty,gte=0"`
}
