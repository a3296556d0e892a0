package handler

import "time"

// ErrorResponse is the standard error envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

// addProductRequest accepts JSON or form-encoded bodies. Retailer and URL
// correspondence is checked by the service, not here.
type addProductRequest struct {
	URL         string `json:"url"          form:"url"          validate:"required,max=2048"`
	Name        string `json:"name"         form:"name"         validate:"required,max=256"`
	Retailer    string `json:"retailer"     form:"retailer"`
	TargetPrice string `json:"target_price" form:"target_price" validate:"max=64"`
}

type productResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Retailer    string    `json:"retailer"`
	TargetPrice *string   `json:"target_price"`
	AddedBy     string    `json:"added_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type listProductsResponse struct {
	Data  []productResponse `json:"data"`
	Count int               `json:"count"`
	// Scope is "all" for admins and "own" otherwise.
	Scope string `json:"scope"`
}

type retailerResponse struct {
	Name       string `json:"name"`
	BadgeColor string `json:"badge_color"`
	TextColor  string `json:"text_color"`
}

type listRetailersResponse struct {
	Data []retailerResponse `json:"data"`
}
