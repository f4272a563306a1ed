package models

// Category is a product grouping shown in the store front.
type Category struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Category string `json:"category" gorm:"uniqueIndex;type:varchar(100);not null" validate:"required,max=100"`
}
