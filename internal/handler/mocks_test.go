package handler

import (
	"context"

	"boardapi/internal/model"
	"boardapi/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockItemStore struct {
	mock.Mock
}

func (m *MockItemStore) CountVisible(ctx context.Context, viewer *uuid.UUID) (int64, error) {
	args := m.Called(ctx, viewer)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemStore) ListVisible(ctx context.Context, viewer *uuid.UUID, offset, limit int) ([]model.Item, error) {
	args := m.Called(ctx, viewer, offset, limit)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *MockItemStore) NthVisible(ctx context.Context, viewer *uuid.UUID, n int) (*model.Item, error) {
	args := m.Called(ctx, viewer, n)
	item, _ := args.Get(0).(*model.Item)
	return item, args.Error(1)
}

func (m *MockItemStore) GetVisible(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, viewer, id)
	item, _ := args.Get(0).(*model.Item)
	return item, args.Error(1)
}

func (m *MockItemStore) GetVisibleWithDetails(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, viewer, id)
	item, _ := args.Get(0).(*model.Item)
	return item, args.Error(1)
}

func (m *MockItemStore) Update(ctx context.Context, item *model.Item) error {
	return m.Called(ctx, item).Error(0)
}

type MockBoardStore struct {
	mock.Mock
}

func (m *MockBoardStore) Count(ctx context.Context, q repository.BoardQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBoardStore) List(ctx context.Context, q repository.BoardQuery) ([]model.Board, error) {
	args := m.Called(ctx, q)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardStore) ListAll(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	args := m.Called(ctx, offset, limit)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *MockUserStore) ListUsernames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}
