package handler

import (
	"time"

	"boardapi/internal/model"
)

// Response types fix which fields each endpoint exposes.

type BoardResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	OwnerID *string `json:"owner_id"`
}

type NaiveBoard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ItemResponse struct {
	ID          string  `json:"id"`
	Board       string  `json:"board"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Owner       *string `json:"owner"`
}

type ItemDetailsResponse struct {
	ID            string  `json:"id"`
	Board         string  `json:"board"`
	BoardName     string  `json:"board_name"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	CreationDate  string  `json:"creation_date"`
	Owner         *string `json:"owner"`
	OwnerEmail    *string `json:"owner_email"`
	OwnerFullName *string `json:"owner_full_name"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewBoardResponse(b model.Board) BoardResponse {
	resp := BoardResponse{
		ID:   b.ID.String(),
		Name: b.Name,
	}
	if b.OwnerID != nil {
		owner := b.OwnerID.String()
		resp.OwnerID = &owner
	}
	return resp
}

func NewNaiveBoard(b model.Board) NaiveBoard {
	return NaiveBoard{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
	}
}

func NewItemResponse(i model.Item) ItemResponse {
	resp := ItemResponse{
		ID:          i.ID.String(),
		Board:       i.BoardID.String(),
		Title:       i.Title,
		Description: i.Description,
	}
	if i.OwnerID != nil {
		owner := i.OwnerID.String()
		resp.Owner = &owner
	}
	return resp
}

// NewItemDetailsResponse expects Board and Owner to be loaded.
func NewItemDetailsResponse(i model.Item) ItemDetailsResponse {
	base := NewItemResponse(i)
	resp := ItemDetailsResponse{
		ID:           base.ID,
		Board:        base.Board,
		Title:        base.Title,
		Description:  base.Description,
		CreationDate: i.CreationDate.UTC().Format(time.RFC3339),
		Owner:        base.Owner,
	}
	if i.Board != nil {
		resp.BoardName = i.Board.Name
	}
	if i.Owner != nil {
		email, fullName := i.Owner.Email, i.Owner.FullName()
		resp.OwnerEmail = &email
		resp.OwnerFullName = &fullName
	}
	return resp
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}
