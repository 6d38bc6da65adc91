package models

import "time"

type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150,username,notme"`
	Email    string `json:"email" validate:"required,max=254,email"`
}

type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest fields are checked by the activation flow itself so that
// missing values surface as parse errors in a fixed order.
type TokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateUserRequest struct {
	Username  string   `json:"username" validate:"required,max=150,username,notme"`
	Email     string   `json:"email" validate:"required,max=254,email"`
	FirstName string   `json:"first_name" validate:"max=150"`
	LastName  string   `json:"last_name" validate:"max=150"`
	Bio       string   `json:"bio"`
	Role      UserRole `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Username  *string   `json:"username" validate:"omitempty,max=150,username,notme"`
	Email     *string   `json:"email" validate:"omitempty,max=254,email"`
	FirstName *string   `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string   `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string   `json:"bio"`
	Role      *UserRole `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

type CreateSlugRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type UpdateSlugRequest struct {
	Name *string `json:"name" validate:"omitempty,max=200"`
	Slug *string `json:"slug" validate:"omitempty,max=50,slug"`
}

type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Year        int      `json:"year" validate:"min=0,notfuture"`
	Description string   `json:"description"`
	Genre       []string `json:"genre"`
	Category    string   `json:"category" validate:"required"`
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=200"`
	Year        *int      `json:"year" validate:"omitempty,min=0,notfuture"`
	Description *string   `json:"description"`
	Genre       *[]string `json:"genre"`
	Category    *string   `json:"category"`
}

type TitleListParams struct {
	Page     int    `form:"-"`
	Category string `form:"category"`
	Genre    string `form:"genre"`
	Name     string `form:"name"`
	Year     int    `form:"year"`
}

type TitleResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Rating      *int      `json:"rating"`
	Description string    `json:"description"`
	Genre       []Genre   `json:"genre"`
	Category    *Category `json:"category"`
}

// TitleWriteResponse mirrors the write payload: genres and category as slugs.
type TitleWriteResponse struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

type ReviewRequest struct {
	Text  *string `json:"text" validate:"required,max=200"`
	Score int     `json:"score" validate:"required,min=1,max=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text" validate:"omitempty,max=200"`
	Score *int    `json:"score" validate:"omitempty,min=1,max=10"`
}

type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
	Title   uint      `json:"title"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required,max=200"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text" validate:"omitempty,max=200"`
}

type CommentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Review  string    `json:"review"`
}

type ListParams struct {
	Page   int    `form:"-"`
	Search string `form:"search"`
}

// Page is the list envelope returned by every collection endpoint.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}
