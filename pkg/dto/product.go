package dto

type CreateProductRequest struct {
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	MainCategory string  `json:"main_category"`
	SubCategory  *string `json:"sub_category,omitempty"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
	PriceCents   *int    `json:"price_cents,omitempty"`
}
