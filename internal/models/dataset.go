package models

// HistoryItem is one historical event, building, or figure attached
// to a city in the reference dataset.
type HistoryItem struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Dynasty     string `json:"dynasty"`
	Year        string `json:"year"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// CityRecord is one city of the reference dataset. Coordinates are
// [longitude, latitude] when present.
type CityRecord struct {
	City        string        `json:"city"`
	Province    string        `json:"province"`
	Coordinates []float64     `json:"coordinates,omitempty"`
	Items       []HistoryItem `json:"items"`
}
