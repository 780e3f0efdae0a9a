package model

// LowStockThreshold is the quantity below which an item is reported as low stock
const LowStockThreshold = 10

type Item struct {
	BaseModel
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	SKU         string  `json:"sku"`
}

// Value is the stock valuation of the item (price * quantity)
func (i Item) Value() float64 {
	return i.Price * float64(i.Quantity)
}

// ItemInput carries an already validated create or update payload.
// Nil fields were absent from the request; on update they keep the stored value.
type ItemInput struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Quantity    *int
	SKU         *string
}

// ItemFilter is the set of list filters read from the query string.
// Values are kept raw so they can be echoed back to the client.
type ItemFilter struct {
	Q        string `json:"q,omitempty"`
	Category string `json:"category,omitempty"`
	MinPrice string `json:"minPrice,omitempty"`
	MaxPrice string `json:"maxPrice,omitempty"`
}

// CategoryStats aggregates the items of one category
type CategoryStats struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
}

// InventoryStats is the overview returned by the stats endpoint.
// Categories are listed in the order they are first encountered.
type InventoryStats struct {
	TotalItems int             `json:"totalItems"`
	TotalValue float64         `json:"totalValue"`
	Categories []CategoryStats `json:"categories"`
	LowStock   []Item          `json:"lowStock"`
}
