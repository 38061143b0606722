package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryStarter  Category = "starter"
	CategoryMain     Category = "main"
	CategorySingle   Category = "single"
	CategoryBeverage Category = "beverage"
)

func (c Category) IsValid() bool {
	return c == CategoryStarter || c == CategoryMain || c == CategorySingle || c == CategoryBeverage
}

type MenuItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Description    string    `db:"description" json:"description"`
	Price          float64   `db:"price" json:"price"`
	Category       Category  `db:"category" json:"category"`
	Image          string    `db:"image" json:"image"`
	Special        bool      `db:"special" json:"special"`
	SpecialOptions []string  `db:"special_options" json:"specialOptions"`
	IsAvailable    bool      `db:"is_available" json:"isAvailable"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// IsValidImage accepts a URL, an inline-encoded image or a static asset path.
func IsValidImage(v string) bool {
	return strings.HasPrefix(v, "http") ||
		strings.HasPrefix(v, "data:image") ||
		strings.HasPrefix(v, "/static/")
}
