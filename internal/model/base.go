package model

import "time"

// BaseModel holds the store-assigned identity and audit timestamps of a record
type BaseModel struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch moves UpdatedAt to now, keeping it strictly after the previous value
// even when the clock has not ticked since the last mutation.
func (base *BaseModel) Touch(now time.Time) {
	if !now.After(base.UpdatedAt) {
		now = base.UpdatedAt.Add(time.Nanosecond)
	}
	base.UpdatedAt = now
}
