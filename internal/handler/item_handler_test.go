package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boardapi/internal/middleware"
	"boardapi/internal/model"
	"boardapi/internal/policy"
	"boardapi/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupItemTest(t *testing.T, viewer *model.User) (*gin.Engine, *ItemHandler, *MockItemStore, *MockBoardStore) {
	gin.SetMode(gin.TestMode)
	t.Helper()
	require.NoError(t, RegisterValidators())

	items := new(MockItemStore)
	boards := new(MockBoardStore)
	h := NewItemHandler(items, boards, policy.Default().Items)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if viewer != nil {
			c.Set(middleware.UserKey, viewer)
		}
		c.Next()
	})
	r.GET("/api/items/", h.List)
	r.GET("/api/items/random/", h.Random)
	r.PUT("/api/items/:id/", h.Update)
	r.PATCH("/api/items/:id/", h.PartialUpdate)
	r.GET("/api/items/:id/with_details/", h.WithDetails)
	return r, h, items, boards
}

func send(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func nilViewer() *uuid.UUID { return nil }

func TestItemList_Paginated(t *testing.T) {
	// Arrange
	router, _, items, _ := setupItemTest(t, nil)
	boardID := uuid.New()
	rows := []model.Item{{ID: uuid.New(), BoardID: boardID, Title: "Fix bug"}}
	items.On("CountVisible", mock.Anything, nilViewer()).Return(int64(11), nil)
	items.On("ListVisible", mock.Anything, nilViewer(), 10, 10).Return(rows, nil)

	// Act
	resp := send(router, "GET", "/api/items/?page=2", nil)

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, float64(11), body["count"])
	assert.Nil(t, body["next"])
	assert.Equal(t, "http://example.com/api/items/", body["previous"])
	results := body["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "Fix bug", results[0].(map[string]any)["title"])
	items.AssertExpectations(t)
}

func TestItemList_InvalidPage(t *testing.T) {
	router, _, items, _ := setupItemTest(t, nil)
	items.On("CountVisible", mock.Anything, nilViewer()).Return(int64(3), nil)

	resp := send(router, "GET", "/api/items/?page=2", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid page.")
	items.AssertNotCalled(t, "ListVisible", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestItemList_PassesViewer(t *testing.T) {
	alice := &model.User{ID: uuid.New(), Username: "alice"}
	router, _, items, _ := setupItemTest(t, alice)
	items.On("CountVisible", mock.Anything, &alice.ID).Return(int64(0), nil)
	items.On("ListVisible", mock.Anything, &alice.ID, 0, 10).Return([]model.Item{}, nil)

	resp := send(router, "GET", "/api/items/", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"count":0,"next":null,"previous":null,"results":[]}`, resp.Body.String())
	items.AssertExpectations(t)
}

func TestItemRandom_Empty(t *testing.T) {
	router, _, items, _ := setupItemTest(t, nil)
	items.On("CountVisible", mock.Anything, nilViewer()).Return(int64(0), nil)

	resp := send(router, "GET", "/api/items/random/", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "No items available")
	items.AssertNotCalled(t, "NthVisible", mock.Anything, mock.Anything, mock.Anything)
}

func TestItemRandom_UsesPick(t *testing.T) {
	router, h, items, _ := setupItemTest(t, nil)
	var bound int
	h.pick = func(n int) int { bound = n; return n - 1 }
	picked := &model.Item{ID: uuid.New(), BoardID: uuid.New(), Title: "third"}
	items.On("CountVisible", mock.Anything, nilViewer()).Return(int64(3), nil)
	items.On("NthVisible", mock.Anything, nilViewer(), 2).Return(picked, nil)

	resp := send(router, "GET", "/api/items/random/", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 3, bound)
	assert.Contains(t, resp.Body.String(), picked.ID.String())
}

func TestItemRandom_SetShrank(t *testing.T) {
	router, h, items, _ := setupItemTest(t, nil)
	h.pick = func(n int) int { return 0 }
	items.On("CountVisible", mock.Anything, nilViewer()).Return(int64(1), nil)
	items.On("NthVisible", mock.Anything, nilViewer(), 0).Return(nil, repository.ErrItemNotFound)

	resp := send(router, "GET", "/api/items/random/", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestItemUpdate_Success(t *testing.T) {
	alice := &model.User{ID: uuid.New()}
	router, _, items, boards := setupItemTest(t, alice)
	item := &model.Item{ID: uuid.New(), BoardID: uuid.New(), Title: "old", OwnerID: &alice.ID}
	newBoard := uuid.New()
	items.On("GetVisible", mock.Anything, &alice.ID, item.ID).Return(item, nil)
	boards.On("Exists", mock.Anything, newBoard).Return(true, nil)
	items.On("Update", mock.Anything, mock.MatchedBy(func(i *model.Item) bool {
		return i.Title == "new" && i.BoardID == newBoard && i.Description == ""
	})).Return(nil)

	resp := send(router, "PUT", "/api/items/"+item.ID.String()+"/", map[string]string{
		"board": newBoard.String(),
		"title": "new",
	})

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"owner":"`+alice.ID.String()+`"`)
	items.AssertExpectations(t)
	boards.AssertExpectations(t)
}

func TestItemUpdate_ValidationErrors(t *testing.T) {
	item := &model.Item{ID: uuid.New(), BoardID: uuid.New(), Title: "old"}

	tests := []struct {
		name      string
		method    string
		body      any
		wantField string
		wantRule  string
	}{
		{"put missing title", "PUT", map[string]string{"board": uuid.NewString()}, "title", "required"},
		{"put blank title", "PUT", map[string]string{"board": uuid.NewString(), "title": " \t"}, "title", "notblank"},
		{"put bad board", "PUT", map[string]string{"board": "nope", "title": "x"}, "board", "uuid"},
		{"patch blank title", "PATCH", map[string]string{"title": ""}, "title", "notblank"},
		{"patch long title", "PATCH", map[string]string{"title": string(bytes.Repeat([]byte("a"), 256))}, "title", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, items, _ := setupItemTest(t, nil)
			items.On("GetVisible", mock.Anything, nilViewer(), item.ID).Return(item, nil)

			resp := send(router, tt.method, "/api/items/"+item.ID.String()+"/", tt.body)

			require.Equal(t, http.StatusBadRequest, resp.Code)
			var body struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, "Invalid request", body.Error)
			assert.Equal(t, tt.wantRule, body.Fields[tt.wantField])
			items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestItemPatch_UnknownBoard(t *testing.T) {
	router, _, items, boards := setupItemTest(t, nil)
	item := &model.Item{ID: uuid.New(), BoardID: uuid.New(), Title: "old"}
	missing := uuid.New()
	items.On("GetVisible", mock.Anything, nilViewer(), item.ID).Return(item, nil)
	boards.On("Exists", mock.Anything, missing).Return(false, nil)

	resp := send(router, "PATCH", "/api/items/"+item.ID.String()+"/", map[string]string{"board": missing.String()})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "does_not_exist")
}

func TestItemPatch_OnlyDescription(t *testing.T) {
	router, _, items, _ := setupItemTest(t, nil)
	item := &model.Item{ID: uuid.New(), BoardID: uuid.New(), Title: "keep"}
	items.On("GetVisible", mock.Anything, nilViewer(), item.ID).Return(item, nil)
	items.On("Update", mock.Anything, mock.MatchedBy(func(i *model.Item) bool {
		return i.Title == "keep" && i.Description == "details"
	})).Return(nil)

	resp := send(router, "PATCH", "/api/items/"+item.ID.String()+"/", map[string]string{"description": "details"})

	assert.Equal(t, http.StatusOK, resp.Code)
	items.AssertExpectations(t)
}

func TestItemUpdate_NotVisible(t *testing.T) {
	router, _, items, _ := setupItemTest(t, nil)
	id := uuid.New()
	items.On("GetVisible", mock.Anything, nilViewer(), id).Return(nil, repository.ErrItemNotFound)

	resp := send(router, "PATCH", "/api/items/"+id.String()+"/", map[string]string{"title": "x"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestItemUpdate_MalformedID(t *testing.T) {
	router, _, _, _ := setupItemTest(t, nil)

	resp := send(router, "PATCH", "/api/items/42/", map[string]string{"title": "x"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestItemUpdate_MalformedJSON(t *testing.T) {
	router, _, items, _ := setupItemTest(t, nil)
	item := &model.Item{ID: uuid.New(), BoardID: uuid.New(), Title: "old"}
	items.On("GetVisible", mock.Anything, nilViewer(), item.ID).Return(item, nil)

	req := httptest.NewRequest("PATCH", "/api/items/"+item.ID.String()+"/", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"Invalid request"}`, resp.Body.String())
}

func TestItemWithDetails(t *testing.T) {
	owner := &model.User{ID: uuid.New(), Email: "alice@example.com", FirstName: "Alice", LastName: "Smith"}
	board := &model.Board{ID: uuid.New(), Name: "Sprint1"}
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	item := &model.Item{
		ID: uuid.New(), BoardID: board.ID, Title: "Fix bug", CreationDate: created,
		OwnerID: &owner.ID, Owner: owner, Board: board,
	}
	router, _, items, _ := setupItemTest(t, owner)
	items.On("GetVisibleWithDetails", mock.Anything, &owner.ID, item.ID).Return(item, nil)

	resp := send(router, "GET", "/api/items/"+item.ID.String()+"/with_details/", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var body ItemDetailsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Sprint1", body.BoardName)
	assert.Equal(t, "alice@example.com", *body.OwnerEmail)
	assert.Equal(t, "Alice Smith", *body.OwnerFullName)
	assert.Equal(t, "2024-03-01T12:00:00Z", body.CreationDate)
}

func TestItemWithDetails_Unowned(t *testing.T) {
	board := &model.Board{ID: uuid.New(), Name: "Sprint1"}
	item := &model.Item{ID: uuid.New(), BoardID: board.ID, Title: "Fix bug", Board: board}
	router, _, items, _ := setupItemTest(t, nil)
	items.On("GetVisibleWithDetails", mock.Anything, nilViewer(), item.ID).Return(item, nil)

	resp := send(router, "GET", "/api/items/"+item.ID.String()+"/with_details/", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Nil(t, body["owner"])
	assert.Nil(t, body["owner_email"])
	assert.Equal(t, "Sprint1", body["board_name"])
}
