package models

import "time"

// RevokedToken records a session token that was logged out before it expired.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;type:varchar(36)"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// All returns every model that is auto-migrated at start-up.
func All() []interface{} {
	return []interface{}{&User{}, &Product{}, &Category{}, &RevokedToken{}}
}
