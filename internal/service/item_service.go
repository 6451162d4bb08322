package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/model"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type CreateItemRequest struct {
	Name string `json:"name"`
}

type BulkCreateItemsRequest struct {
	Items []string `json:"items"`
}

// BulkCreateResult reports which names were added and which already existed
type BulkCreateResult struct {
	Created []model.Item `json:"created"`
	Skipped []string     `json:"skipped"`
}

type ItemService interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*model.Item, error)
	CreateItems(ctx context.Context, req BulkCreateItemsRequest) (BulkCreateResult, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	SearchItems(ctx context.Context, search string) ([]model.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

type itemService struct {
	repo repository.ItemRepository
	now  func() time.Time
}

func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo, now: time.Now}
}

// CatalogName trims name, collapses inner whitespace and title-cases every word,
// so "  green   CHILLI" and "Green Chilli" are the same catalog entry.
func CatalogName(name string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}

func (s *itemService) CreateItem(ctx context.Context, req CreateItemRequest) (*model.Item, error) {
	name := CatalogName(req.Name)
	if name == "" {
		return nil, validationError("Item name is required")
	}

	item := &model.Item{ItemNo: newRecordNo("ITEM", s.now()), Name: name}
	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Item %q already exists", name)
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

func (s *itemService) CreateItems(ctx context.Context, req BulkCreateItemsRequest) (BulkCreateResult, error) {
	seen := make(map[string]bool, len(req.Items))
	items := make([]model.Item, 0, len(req.Items))
	now := s.now()
	for _, raw := range req.Items {
		name := CatalogName(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		items = append(items, model.Item{ItemNo: newRecordNo("ITEM", now), Name: name})
	}
	if len(items) == 0 {
		return BulkCreateResult{}, validationError("Items array is required")
	}

	created, err := s.repo.CreateMany(ctx, items)
	if err != nil {
		return BulkCreateResult{}, fmt.Errorf("failed to create items: %w", err)
	}

	written := make(map[string]bool, len(created))
	for _, it := range created {
		written[it.Name] = true
	}
	result := BulkCreateResult{Created: created, Skipped: []string{}}
	for _, it := range items {
		if !written[it.Name] {
			result.Skipped = append(result.Skipped, it.Name)
		}
	}
	return result, nil
}

func (s *itemService) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	return items, nil
}

func (s *itemService) SearchItems(ctx context.Context, search string) ([]model.Item, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil, validationError("Search query is required")
	}
	items, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return items, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	uid, err := parseID(id, "item")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		return lookupError(err, "Item")
	}
	return nil
}
