package models

import "time"

// Product represents an item for sale. Category is a free-form label.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Category    string    `json:"category" gorm:"type:varchar(100);index;not null" validate:"required,max=100"`
	Name        string    `json:"product" gorm:"column:product;type:varchar(255);not null" validate:"required,max=255"`
	Price       float64   `json:"price" validate:"gte=0"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
