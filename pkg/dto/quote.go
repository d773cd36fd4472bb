package dto

type CreateQuoteRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Company    *string `json:"company,omitempty"`
	Product    *string `json:"product,omitempty"`
	TemplateID *string `json:"template_id,omitempty"`
	Message    string  `json:"message"`
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status"`
}
