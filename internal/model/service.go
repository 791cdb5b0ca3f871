package model

// Service is a bookable salon treatment. Services are never removed from the
// sheet; retiring one flips Active off so historical appointments keep their
// join target.
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	CategoryID      int64   `json:"category_id"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	SupplyCost      float64 `json:"supply_cost"`
	Active          bool    `json:"active"`
	Description     string  `json:"description,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`

	// CategoryName is joined in on reads; empty when the category id dangles.
	CategoryName string `json:"category_name,omitempty"`
}

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	CategoryID      int64   `json:"category_id" binding:"required"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gte=15"`
	SupplyCost      float64 `json:"supply_cost" binding:"gte=0"`
	Description     string  `json:"description"`
}

type UpdateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	CategoryID      int64   `json:"category_id" binding:"required"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gte=15"`
	SupplyCost      float64 `json:"supply_cost" binding:"gte=0"`
	Description     string  `json:"description"`
}
