package models

import "time"

// FallbackCategoryName labels posts whose category is the root context
// itself or cannot be resolved at all.
const FallbackCategoryName = "General"

type Category struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ContextID   string    `json:"context_id" gorm:"index"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
