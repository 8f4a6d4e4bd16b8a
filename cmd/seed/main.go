// Command seed fills the configured database with demo users, a board and
// items, then prints a bearer token per user.
package main

import (
	"context"
	"fmt"
	"log"

	"boardapi/internal/auth"
	"boardapi/internal/config"
	"boardapi/internal/database"
	"boardapi/internal/logger"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.LogLevel, cfg.LogJSON)

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	boards := repository.NewBoardRepository(db)
	items := repository.NewItemRepository(db)

	alice := mustUser(ctx, users, "alice", "Alice", "Smith", false)
	bob := mustUser(ctx, users, "bob", "Bob", "Jones", false)
	admin := mustUser(ctx, users, "admin", "Ada", "Admin", true)

	sprint := &model.Board{Name: "Sprint1", Description: "First sprint", OwnerID: &alice.ID}
	if err := boards.Create(ctx, sprint); err != nil {
		log.Fatalf("create board: %v", err)
	}
	backlog := &model.Board{Name: "Backlog", Description: "Shared backlog"}
	if err := boards.Create(ctx, backlog); err != nil {
		log.Fatalf("create board: %v", err)
	}

	seedItems := []*model.Item{
		{BoardID: backlog.ID, Title: "Fix bug", Description: "Visible to everyone"},
		{BoardID: sprint.ID, Title: "Write docs", OwnerID: &alice.ID},
		{BoardID: backlog.ID, Title: "Review PR", OwnerID: &bob.ID},
	}
	for _, item := range seedItems {
		if err := items.Create(ctx, item); err != nil {
			log.Fatalf("create item %q: %v", item.Title, err)
		}
	}

	for _, u := range []*model.User{alice, bob, admin} {
		token, err := auth.GenerateToken(cfg.JWTSecret, u.ID.String(), cfg.JWTExpiry)
		if err != nil {
			log.Fatalf("token for %s: %v", u.Username, err)
		}
		fmt.Printf("%-6s Authorization: Bearer %s\n", u.Username, token)
	}
}

func mustUser(ctx context.Context, users *repository.UserRepository, username, first, last string, staff bool) *model.User {
	u := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: first,
		LastName:  last,
		IsStaff:   staff,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("create user %s: %v", username, err)
	}
	return u
}
