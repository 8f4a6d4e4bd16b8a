package repository

import (
	"context"
	"errors"

	"boardapi/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

// BoardQuery narrows a board listing. A nil OwnerID with OwnedOnly set
// matches nothing: anonymous viewers own no boards.
type BoardQuery struct {
	OwnedOnly bool
	OwnerID   *uuid.UUID
	Name      *string
	OrderBy   string // "id", "-id" or empty for creation order
	Offset    int
	Limit     int // -1 for no limit
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Board{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (q BoardQuery) apply(tx *gorm.DB) *gorm.DB {
	if q.OwnedOnly {
		tx = tx.Where("owner_id = ?", *q.OwnerID)
	}
	if q.Name != nil {
		tx = tx.Where("name = ?", *q.Name)
	}
	return tx
}

func (r *BoardRepository) Count(ctx context.Context, q BoardQuery) (int64, error) {
	if q.OwnedOnly && q.OwnerID == nil {
		return 0, nil
	}
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Board{}).Scopes(q.apply).Count(&total).Error
	return total, err
}

func (r *BoardRepository) List(ctx context.Context, q BoardQuery) ([]model.Board, error) {
	if q.OwnedOnly && q.OwnerID == nil {
		return []model.Board{}, nil
	}
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Scopes(q.apply, boardOrder(q.OrderBy)).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&boards).Error
	return boards, err
}

func boardOrder(orderBy string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		switch orderBy {
		// ids are UUIDs, so id order follows creation like a serial key would
		case "id":
			return tx.Order("created_at").Order("id")
		case "-id":
			return tx.Order("created_at DESC").Order("id DESC")
		default:
			return tx.Order("created_at").Order("id")
		}
	}
}

// ListAll returns every board without scoping or paging.
func (r *BoardRepository) ListAll(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("created_at").Order("id").Find(&boards).Error
	return boards, err
}

// Delete removes a board; its items go with it through the foreign key cascade.
func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}
