package repository

import (
	"context"

	"github.com/projectblurimedia/Veggie-Tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	// CreateMany inserts items, skipping names that already exist, and returns the rows written.
	CreateMany(ctx context.Context, items []model.Item) ([]model.Item, error)
	List(ctx context.Context, search string) ([]model.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return translate(GetDB(ctx, r.db).Create(item).Error)
}

func (r *itemRepository) CreateMany(ctx context.Context, items []model.Item) ([]model.Item, error) {
	db := GetDB(ctx, r.db)
	created := make([]model.Item, 0, len(items))
	for i := range items {
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&items[i])
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 1 {
			created = append(created, items[i])
		}
	}
	return created, nil
}

func (r *itemRepository) List(ctx context.Context, search string) ([]model.Item, error) {
	query := GetDB(ctx, r.db)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	var items []model.Item
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Item{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
