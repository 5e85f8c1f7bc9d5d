package domain

import "time"

type Organization struct {
	ID          string
	Name        string
	Email       string
	Description string
	Industry    string
	Type        string
	Country     string
	Address     string
	State       string
	OwnerID     string // Foreign key to users table
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
