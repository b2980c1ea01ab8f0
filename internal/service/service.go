package service

import "time"

// MaxActivePerCarwash is the soft cap on how many active services a single
// provider may list.
const MaxActivePerCarwash = 20

type Service struct {
	ID          string    `json:"id"`
	CarWashID   string    `json:"carWashId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
