package model

import "time"

type EventAction string

const (
	ActionItemCreated EventAction = "item_created"
	ActionItemUpdated EventAction = "item_updated"
	ActionItemDeleted EventAction = "item_deleted"
)

// InventoryEvent is pushed to WebSocket clients after every successful mutation
type InventoryEvent struct {
	EventID   string      `json:"event_id"`
	Type      string      `json:"type"`
	Action    EventAction `json:"action"`
	Item      *Item       `json:"item,omitempty"`
	ItemID    string      `json:"item_id"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}
