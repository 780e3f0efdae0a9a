package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go-inventory-shop/internal/cache"
	"go-inventory-shop/internal/model"
	"go-inventory-shop/internal/repository"

	"github.com/google/uuid"
)

const listCachePrefix = "inventory"

// EventPublisher fans inventory events out to live clients (the WebSocket hub)
type EventPublisher interface {
	Publish(payload interface{})
}

type ListResult struct {
	Items  []model.Item
	Cached bool
}

type InventoryService interface {
	ListItems(filter model.ItemFilter) (*ListResult, error)
	GetItem(id string) (*model.Item, error)
	CreateItem(input model.ItemInput) (*model.Item, error)
	UpdateItem(id string, input model.ItemInput) (*model.Item, error)
	DeleteItem(id string) error
}

type inventoryService struct {
	itemRepo  repository.ItemRepository
	listCache *cache.Cache[[]model.Item]
	publisher EventPublisher
}

// NewInventoryService wires the store, the list cache and an optional event publisher
func NewInventoryService(repo repository.ItemRepository, listCache *cache.Cache[[]model.Item], publisher EventPublisher) InventoryService {
	return &inventoryService{
		itemRepo:  repo,
		listCache: listCache,
		publisher: publisher,
	}
}

func (s *inventoryService) ListItems(filter model.ItemFilter) (*ListResult, error) {
	key, err := listCacheKey(filter)
	if err != nil {
		return nil, err
	}

	if items, ok := s.listCache.Get(key); ok {
		return &ListResult{Items: items, Cached: true}, nil
	}

	// A mutation clearing the cache while the store is read bumps the
	// generation, so the possibly stale result is returned but not cached.
	generation := s.listCache.Generation()
	items, err := s.itemRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	items = FilterItems(items, filter)

	s.listCache.SetIfGeneration(key, items, generation)
	return &ListResult{Items: items}, nil
}

func (s *inventoryService) GetItem(id string) (*model.Item, error) {
	return s.itemRepo.FindByID(id)
}

func (s *inventoryService) CreateItem(input model.ItemInput) (*model.Item, error) {
	item, err := s.itemRepo.Create(input)
	if err != nil {
		return nil, err
	}
	s.listCache.Clear()

	s.publish(model.ActionItemCreated, item.ID, item, fmt.Sprintf("Item '%s' created", item.Name))
	return item, nil
}

func (s *inventoryService) UpdateItem(id string, input model.ItemInput) (*model.Item, error) {
	item, err := s.itemRepo.Update(id, input)
	if err != nil {
		return nil, err
	}
	s.listCache.Clear()

	s.publish(model.ActionItemUpdated, item.ID, item, fmt.Sprintf("Item '%s' updated", item.Name))
	return item, nil
}

func (s *inventoryService) DeleteItem(id string) error {
	if err := s.itemRepo.Delete(id); err != nil {
		return err
	}
	s.listCache.Clear()

	s.publish(model.ActionItemDeleted, id, nil, fmt.Sprintf("Item %s deleted", id))
	return nil
}

func (s *inventoryService) publish(action model.EventAction, itemID string, item *model.Item, message string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(model.InventoryEvent{
		EventID:   uuid.NewString(),
		Type:      "inventory_update",
		Action:    action,
		Item:      item,
		ItemID:    itemID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// FilterItems applies the list filters in order: text search on name or
// description, exact category, then the price bounds. Every filter is
// case-insensitive where it compares text, and an empty filter is skipped.
func FilterItems(items []model.Item, filter model.ItemFilter) []model.Item {
	query := strings.ToLower(filter.Q)
	category := strings.ToLower(filter.Category)
	minPrice := priceBound(filter.MinPrice)
	maxPrice := priceBound(filter.MaxPrice)

	filtered := make([]model.Item, 0, len(items))
	for _, item := range items {
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		if category != "" && strings.ToLower(item.Category) != category {
			continue
		}
		// NaN bounds never compare true, so an unparseable bound matches nothing
		if filter.MinPrice != "" && !(item.Price >= minPrice) {
			continue
		}
		if filter.MaxPrice != "" && !(item.Price <= maxPrice) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func priceBound(raw string) float64 {
	if raw == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func listCacheKey(filter model.ItemFilter) (string, error) {
	encoded, err := json.Marshal(filter)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return listCachePrefix + string(encoded), nil
}
