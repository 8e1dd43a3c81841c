package models

type AnalyzeRequest struct {
	// Base64 JPEG, optionally prefixed with a data URL header.
	Image string `json:"image"`
}

type SearchRequest struct {
	Query   string `json:"query"`
	Barcode string `json:"barcode"`
}

type AddItemRequest struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Color    string         `json:"color"`
	Season   string         `json:"season"`
	Barcode  string         `json:"barcode"`
	Notes    string         `json:"notes"`
	ImageURI string         `json:"imageUri"`
	Product  *ProductResult `json:"product,omitempty"`
}

type UploadImageRequest struct {
	Image string `json:"image"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
