package models

// CategoryNode is one main category with its sub-categories, in the order
// they first appear. Templates and products share the shape.
type CategoryNode struct {
	Name          string   `json:"name"`
	SubCategories []string `json:"subcategories"`
}
