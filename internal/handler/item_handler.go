package handler

import (
	"context"
	"errors"
	"math/rand"
	"net/http"

	"boardapi/internal/middleware"
	"boardapi/internal/model"
	"boardapi/internal/policy"
	"boardapi/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemStore interface {
	CountVisible(ctx context.Context, viewer *uuid.UUID) (int64, error)
	ListVisible(ctx context.Context, viewer *uuid.UUID, offset, limit int) ([]model.Item, error)
	NthVisible(ctx context.Context, viewer *uuid.UUID, n int) (*model.Item, error)
	GetVisible(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*model.Item, error)
	GetVisibleWithDetails(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*model.Item, error)
	Update(ctx context.Context, item *model.Item) error
}

type BoardChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type ItemHandler struct {
	items  ItemStore
	boards BoardChecker
	policy policy.Endpoint
	pick   func(n int) int
}

func NewItemHandler(items ItemStore, boards BoardChecker, p policy.Endpoint) *ItemHandler {
	return &ItemHandler{
		items:  items,
		boards: boards,
		policy: p,
		pick:   rand.Intn,
	}
}

// UpdateItemRequest is the full-replacement body for PUT.
type UpdateItemRequest struct {
	Board       string `json:"board" binding:"required,uuid"`
	Title       string `json:"title" binding:"required,notblank,max=255"`
	Description string `json:"description"`
}

// PatchItemRequest carries only the fields to change.
type PatchItemRequest struct {
	Board       *string `json:"board" binding:"omitempty,uuid"`
	Title       *string `json:"title" binding:"omitempty,notblank,max=255"`
	Description *string `json:"description"`
}

// List godoc
// @Summary      List items
// @Description  Unowned items plus, for an authenticated caller, the caller's own items.
// @Tags         Items
// @Produce      json
// @Param        page       query  string  false  "Page number or 'last'"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  pagination.Page[ItemResponse]
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/items/ [get]
func (h *ItemHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := middleware.ViewerID(c)

	respondList(c, h.policy.Pagination, listing[model.Item, ItemResponse]{
		count: func() (int64, error) { return h.items.CountVisible(ctx, viewer) },
		fetch: func(offset, limit int) ([]model.Item, error) {
			return h.items.ListVisible(ctx, viewer, offset, limit)
		},
		serialize: NewItemResponse,
		what:      "items",
	})
}

// Random godoc
// @Summary  Pick a random visible item
// @Tags     Items
// @Produce  json
// @Success  200  {object}  ItemResponse
// @Failure  404  {object}  map[string]string
// @Security BearerAuth
// @Router   /api/items/random/ [get]
func (h *ItemHandler) Random(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := middleware.ViewerID(c)

	count, err := h.items.CountVisible(ctx, viewer)
	if err != nil {
		internalError(c, "Failed to count items", err)
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No items available"})
		return
	}

	item, err := h.items.NthVisible(ctx, viewer, h.pick(int(count)))
	if errors.Is(err, repository.ErrItemNotFound) {
		// the set shrank between count and fetch
		c.JSON(http.StatusNotFound, gin.H{"error": "No items available"})
		return
	}
	if err != nil {
		internalError(c, "Failed to retrieve item", err)
		return
	}
	c.JSON(http.StatusOK, NewItemResponse(*item))
}

// WithDetails godoc
// @Summary  Get an item with board name and owner details
// @Tags     Items
// @Produce  json
// @Param    id   path      string  true  "Item ID"
// @Success  200  {object}  ItemDetailsResponse
// @Failure  404  {object}  map[string]string
// @Security BearerAuth
// @Router   /api/items/{id}/with_details/ [get]
func (h *ItemHandler) WithDetails(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	item, err := h.items.GetVisibleWithDetails(c.Request.Context(), middleware.ViewerID(c), id)
	if errors.Is(err, repository.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		internalError(c, "Failed to retrieve item", err)
		return
	}
	c.JSON(http.StatusOK, NewItemDetailsResponse(*item))
}

// Update godoc
// @Summary  Replace an item's editable fields
// @Tags     Items
// @Accept   json
// @Produce  json
// @Param    id       path      string             true  "Item ID"
// @Param    request  body      UpdateItemRequest  true  "Item fields"
// @Success  200      {object}  ItemResponse
// @Failure  400      {object}  map[string]interface{}
// @Failure  404      {object}  map[string]string
// @Security BearerAuth
// @Router   /api/items/{id}/ [put]
func (h *ItemHandler) Update(c *gin.Context) {
	item, ok := h.loadForUpdate(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	boardID, ok := h.resolveBoard(c, req.Board)
	if !ok {
		return
	}
	item.BoardID = boardID
	item.Title = req.Title
	item.Description = req.Description

	h.save(c, item)
}

// PartialUpdate godoc
// @Summary  Update some of an item's fields
// @Tags     Items
// @Accept   json
// @Produce  json
// @Param    id       path      string            true  "Item ID"
// @Param    request  body      PatchItemRequest  true  "Fields to change"
// @Success  200      {object}  ItemResponse
// @Failure  400      {object}  map[string]interface{}
// @Failure  404      {object}  map[string]string
// @Security BearerAuth
// @Router   /api/items/{id}/ [patch]
func (h *ItemHandler) PartialUpdate(c *gin.Context) {
	item, ok := h.loadForUpdate(c)
	if !ok {
		return
	}

	var req PatchItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if req.Board != nil {
		boardID, ok := h.resolveBoard(c, *req.Board)
		if !ok {
			return
		}
		item.BoardID = boardID
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}

	h.save(c, item)
}

// loadForUpdate fetches the target within the caller's visible set, so items
// owned by someone else look absent.
func (h *ItemHandler) loadForUpdate(c *gin.Context) (*model.Item, bool) {
	id, ok := itemID(c)
	if !ok {
		return nil, false
	}

	item, err := h.items.GetVisible(c.Request.Context(), middleware.ViewerID(c), id)
	if errors.Is(err, repository.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return nil, false
	}
	if err != nil {
		internalError(c, "Failed to retrieve item", err)
		return nil, false
	}
	return item, true
}

func (h *ItemHandler) resolveBoard(c *gin.Context, raw string) (uuid.UUID, bool) {
	boardID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": gin.H{"board": "uuid"}})
		return uuid.Nil, false
	}

	exists, err := h.boards.Exists(c.Request.Context(), boardID)
	if err != nil {
		internalError(c, "Failed to check board", err)
		return uuid.Nil, false
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": gin.H{"board": "does_not_exist"}})
		return uuid.Nil, false
	}
	return boardID, true
}

func (h *ItemHandler) save(c *gin.Context, item *model.Item) {
	err := h.items.Update(c.Request.Context(), item)
	switch {
	case errors.Is(err, model.ErrBlankTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": gin.H{"title": "notblank"}})
	case errors.Is(err, repository.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case err != nil:
		internalError(c, "Failed to update item", err)
	default:
		c.JSON(http.StatusOK, NewItemResponse(*item))
	}
}

func itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	body := gin.H{"error": "Invalid request"}
	if fields := fieldErrors(err); fields != nil {
		body["fields"] = fields
	}
	c.JSON(http.StatusBadRequest, body)
}
