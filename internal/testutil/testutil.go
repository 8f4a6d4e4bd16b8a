// Package testutil provides an in-memory SQLite database and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"boardapi/internal/database"
	"boardapi/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated database private to the calling test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string, staff bool) *model.User {
	t.Helper()
	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: username,
		LastName:  "Tester",
		IsStaff:   staff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Fixtures are spaced a millisecond apart so creation order is stable.

func CreateBoard(t *testing.T, db *gorm.DB, name string, owner *model.User) *model.Board {
	t.Helper()
	time.Sleep(time.Millisecond)
	board := &model.Board{Name: name, Description: name + " board"}
	if owner != nil {
		board.OwnerID = &owner.ID
	}
	require.NoError(t, db.Create(board).Error)
	return board
}

func CreateItem(t *testing.T, db *gorm.DB, board *model.Board, title string, owner *model.User) *model.Item {
	t.Helper()
	time.Sleep(time.Millisecond)
	item := &model.Item{BoardID: board.ID, Title: title}
	if owner != nil {
		item.OwnerID = &owner.ID
	}
	require.NoError(t, db.Create(item).Error)
	return item
}
