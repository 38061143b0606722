package models

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpeningHours is keyed by lowercase weekday name.
type OpeningHours map[string]DayHours

type Review struct {
	ID           uuid.UUID `db:"id" json:"id"`
	RestaurantID uuid.UUID `db:"restaurant_id" json:"restaurantId"`
	UserID       uuid.UUID `db:"user_id" json:"user"`
	Rating       int       `db:"rating" json:"rating"`
	Comment      string    `db:"comment" json:"comment"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type Restaurant struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Description  string       `db:"description" json:"description"`
	Cuisine      string       `db:"cuisine" json:"cuisine"`
	Address      Address      `db:"address" json:"address"`
	Phone        string       `db:"phone" json:"phone"`
	Email        string       `db:"email" json:"email"`
	OpeningHours OpeningHours `db:"opening_hours" json:"openingHours"`
	Rating       float64      `db:"rating" json:"rating"`
	Reviews      []Review     `db:"-" json:"reviews,omitempty"`
	IsActive     bool         `db:"is_active" json:"isActive"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
}

// AverageRating keeps the stored rating consistent with the review list.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
