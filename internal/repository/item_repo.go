package repository

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"go-inventory-shop/internal/model"
)

var ErrItemNotFound = errors.New("item not found")

type ItemRepository interface {
	FindAll() ([]model.Item, error)
	FindByID(id string) (*model.Item, error)
	Create(input model.ItemInput) (*model.Item, error)
	Update(id string, input model.ItemInput) (*model.Item, error)
	Delete(id string) error
	Stats() (*model.InventoryStats, error)
}

// itemRepo keeps every item in process memory.
// order preserves insertion order for listing, items gives O(1) lookup by id.
type itemRepo struct {
	mu     sync.RWMutex
	items  map[string]*model.Item
	order  []string
	nextID int
	now    func() time.Time
}

func NewItemRepo(seed []model.Item) ItemRepository {
	return newItemRepo(seed, func() time.Time { return time.Now().UTC() })
}

func newItemRepo(seed []model.Item, now func() time.Time) *itemRepo {
	r := &itemRepo{
		items:  make(map[string]*model.Item, len(seed)),
		nextID: 1,
		now:    now,
	}
	for _, item := range seed {
		item := item // per-iteration copy (Go <1.22 loop variable semantics)
		r.items[item.ID] = &item
		r.order = append(r.order, item.ID)
		// Keep the sequence ahead of every seeded numeric id
		if n, err := strconv.Atoi(item.ID); err == nil && n >= r.nextID {
			r.nextID = n + 1
		}
	}
	return r
}

// SampleItems returns the catalogue the store is seeded with at startup
func SampleItems(now time.Time) []model.Item {
	base := model.BaseModel{CreatedAt: now, UpdatedAt: now}
	items := []model.Item{
		{
			BaseModel:   base,
			Name:        "Laptop Computer",
			Description: "High-performance laptop for business and gaming",
			Category:    "Electronics",
			Price:       999.99,
			Quantity:    15,
			SKU:         "LAP001",
		},
		{
			BaseModel:   base,
			Name:        "Office Chair",
			Description: "Ergonomic office chair with lumbar support",
			Category:    "Furniture",
			Price:       249.99,
			Quantity:    8,
			SKU:         "CHR001",
		},
		{
			BaseModel:   base,
			Name:        "Wireless Mouse",
			Description: "Bluetooth wireless mouse with precision tracking",
			Category:    "Electronics",
			Price:       29.99,
			Quantity:    50,
			SKU:         "MOU001",
		},
	}
	for i := range items {
		items[i].ID = strconv.Itoa(i + 1)
	}
	return items
}

func (r *itemRepo) FindAll() ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.Item, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, *r.items[id])
	}
	return items, nil
}

func (r *itemRepo) FindByID(id string) (*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	found := *item
	return &found, nil
}

func (r *itemRepo) Create(input model.ItemInput) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	item := &model.Item{
		BaseModel: model.BaseModel{
			ID:        strconv.Itoa(r.nextID),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	r.nextID++
	applyInput(item, input)
	if item.SKU == "" {
		item.SKU = GenerateSKU(now)
	}

	r.items[item.ID] = item
	r.order = append(r.order, item.ID)

	created := *item
	return &created, nil
}

// Update merges only the fields present in input; id and createdAt are never touched
func (r *itemRepo) Update(id string, input model.ItemInput) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}

	merged := *existing
	applyInput(&merged, input)
	merged.Touch(r.now())
	r.items[id] = &merged

	updated := merged
	return &updated, nil
}

func (r *itemRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(r.items, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *itemRepo) Stats() (*model.InventoryStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &model.InventoryStats{
		TotalItems: len(r.order),
		Categories: []model.CategoryStats{},
		LowStock:   []model.Item{},
	}
	categoryIndex := make(map[string]int)

	for _, id := range r.order {
		item := r.items[id]
		value := item.Value()
		stats.TotalValue += value

		if item.Quantity < model.LowStockThreshold {
			stats.LowStock = append(stats.LowStock, *item)
		}

		idx, seen := categoryIndex[item.Category]
		if !seen {
			idx = len(stats.Categories)
			categoryIndex[item.Category] = idx
			stats.Categories = append(stats.Categories, model.CategoryStats{Category: item.Category})
		}
		stats.Categories[idx].Count++
		stats.Categories[idx].TotalValue += value
	}

	return stats, nil
}

// GenerateSKU builds "SKU" + base36 timestamp + 3 random base36 characters, upper-cased
func GenerateSKU(now time.Time) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	var suffix [3]byte
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return strings.ToUpper("SKU" + strconv.FormatInt(now.UnixMilli(), 36) + string(suffix[:]))
}

func applyInput(item *model.Item, input model.ItemInput) {
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.SKU != nil {
		item.SKU = *input.SKU
	}
}
