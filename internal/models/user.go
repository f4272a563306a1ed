package models

import "time"

// AccountStatus gates whether a user may log in.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
)

// Valid reports whether s is a known status.
func (s AccountStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User represents an account of the store.
type User struct {
	ID            string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Role          string        `json:"role" gorm:"type:varchar(32);not null"`
	Name          string        `json:"name" gorm:"type:varchar(255);not null"`
	Username      string        `json:"username" gorm:"<-:create;uniqueIndex;type:varchar(100);not null"`
	PasswordHash  string        `json:"-" gorm:"type:varchar(255);not null"` // never serialized
	AccountStatus AccountStatus `json:"accountStatus" gorm:"type:varchar(16);not null;default:ACTIVE"`
	DateAdded     time.Time     `json:"dateAdded" gorm:"<-:create;autoCreateTime"`
}
