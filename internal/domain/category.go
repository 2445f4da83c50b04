package domain

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fallback metadata used when an expense references a category that no
// longer exists.
const (
	UnknownCategoryName  = "Unknown Category"
	UnknownCategoryColor = "#CCCCCC"
	UnknownCategoryIcon  = "help"
)

// The "Other" category collects expenses orphaned by category deletion.
const (
	OtherCategoryName  = "Other"
	OtherCategoryColor = "#9E9E9E"
	OtherCategoryIcon  = "category"
)

const MaxCategoryNameLength = 50

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id string) (*Category, error)
	GetByName(name string) (*Category, error)
	List() ([]*Category, error)
	Update(id string, name, color, icon string) (*Category, error)
	Delete(id string) error
}
