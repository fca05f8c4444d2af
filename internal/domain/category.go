package domain

// Category represents a catalog category as delivered by the backend API.
type Category struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	Icon         string `json:"icon,omitempty"`
	ShowOnHome   bool   `json:"showOnHome,omitempty"`
	ProductCount int    `json:"productCount,omitempty"`
}
