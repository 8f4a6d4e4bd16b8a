package handler

import (
	"context"
	"errors"
	"net/http"

	"boardapi/internal/model"
	"boardapi/internal/policy"
	"boardapi/internal/repository"

	"github.com/gin-gonic/gin"
)

type UserStore interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]model.User, error)
	ListUsernames(ctx context.Context) ([]string, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type UserHandler struct {
	users  UserStore
	policy policy.Endpoint
}

func NewUserHandler(users UserStore, p policy.Endpoint) *UserHandler {
	return &UserHandler{users: users, policy: p}
}

// ListUsernames godoc
// @Summary   List usernames
// @Tags      Users
// @Produce   json
// @Success   200  {array}   string
// @Failure   401  {object}  map[string]string
// @Failure   403  {object}  map[string]string
// @Security  BearerAuth
// @Router    /rest/list_users/ [get]
func (h *UserHandler) ListUsernames(c *gin.Context) {
	usernames, err := h.users.ListUsernames(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to retrieve users", err)
		return
	}
	if usernames == nil {
		usernames = []string{}
	}
	c.JSON(http.StatusOK, usernames)
}

// List godoc
// @Summary   List users
// @Tags      Users
// @Produce   json
// @Success   200  {array}   UserResponse
// @Failure   401  {object}  map[string]string
// @Failure   403  {object}  map[string]string
// @Security  BearerAuth
// @Router    /generic/users/ [get]
func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	respondList(c, h.policy.Pagination, listing[model.User, UserResponse]{
		count: func() (int64, error) { return h.users.Count(ctx) },
		fetch: func(offset, limit int) ([]model.User, error) {
			return h.users.List(ctx, offset, limit)
		},
		serialize: NewUserResponse,
		what:      "users",
	})
}

// Retrieve godoc
// @Summary   Get a user by email
// @Tags      Users
// @Produce   json
// @Param     email  path      string  true  "User email"
// @Success   200    {object}  UserResponse
// @Failure   401    {object}  map[string]string
// @Failure   403    {object}  map[string]string
// @Failure   404    {object}  map[string]string
// @Security  BearerAuth
// @Router    /generic/users/{email}/ [get]
func (h *UserHandler) Retrieve(c *gin.Context) {
	user, err := h.users.FindByEmail(c.Request.Context(), c.Param("email"))
	if errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		internalError(c, "Failed to retrieve user", err)
		return
	}
	c.JSON(http.StatusOK, NewUserResponse(*user))
}
