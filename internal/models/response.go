package models

type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Services  map[string]bool `json:"services"`
}

type SearchResponse struct {
	Products []ProductResult `json:"products"`
}

type ItemsResponse struct {
	Items []ClosetItem `json:"items"`
}

type UploadImageResponse struct {
	ImageURI string `json:"imageUri"`
}
