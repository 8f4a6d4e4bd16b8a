package repository

import (
	"context"
	"errors"

	"boardapi/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// visibleTo restricts items to unowned ones plus, for an authenticated
// viewer, their own. Other users' items never match.
func visibleTo(viewer *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if viewer == nil {
			return tx.Where("owner_id IS NULL")
		}
		return tx.Where("(owner_id IS NULL OR owner_id = ?)", *viewer)
	}
}

func byCreation(tx *gorm.DB) *gorm.DB {
	return tx.Order("creation_date").Order("id")
}

// Create adds a new item to the database
func (r *ItemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ItemRepository) CountVisible(ctx context.Context, viewer *uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Scopes(visibleTo(viewer)).Count(&count).Error
	return count, err
}

// ListVisible returns one window of the items viewer may see, oldest first.
func (r *ItemRepository) ListVisible(ctx context.Context, viewer *uuid.UUID, offset, limit int) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Scopes(visibleTo(viewer), byCreation).
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, err
}

// NthVisible returns the n-th (0-based) visible item in creation order.
func (r *ItemRepository) NthVisible(ctx context.Context, viewer *uuid.UUID, n int) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Scopes(visibleTo(viewer), byCreation).
		Offset(n).
		Limit(1).
		Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetVisible looks an item up by ID within the viewer's visible set.
func (r *ItemRepository) GetVisible(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*model.Item, error) {
	return r.getVisible(r.db.WithContext(ctx), viewer, id)
}

// GetVisibleWithDetails is GetVisible with the board and owner loaded.
func (r *ItemRepository) GetVisibleWithDetails(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*model.Item, error) {
	return r.getVisible(r.db.WithContext(ctx).Preload("Board").Preload("Owner"), viewer, id)
}

func (r *ItemRepository) getVisible(tx *gorm.DB, viewer *uuid.UUID, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	err := tx.Scopes(visibleTo(viewer)).Where("id = ?", id).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update writes the editable columns of an item. creation_date and owner_id
// are never touched.
func (r *ItemRepository) Update(ctx context.Context, item *model.Item) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Select("board_id", "title", "description").
		Updates(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
