package models

type AnalysisResult struct {
	Category    string  `json:"category"`
	Color       string  `json:"color"`
	Season      string  `json:"season"`
	Description string  `json:"description"`
	BrandGuess  *string `json:"brand_guess"`
}
