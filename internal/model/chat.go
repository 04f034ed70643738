package model

import "time"

// Turn is one exchange of the conversation log
type Turn struct {
	UserText   string    `json:"user"`
	BotText    string    `json:"bot"`
	Confidence float64   `json:"confidence"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
}

// Reply is what the response composer produces for one message
type Reply struct {
	Text        string   `json:"text"`
	Confidence  float64  `json:"confidence"`
	Source      string   `json:"source"`
	Intent      Intent   `json:"intent"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ChatRequest represents a user message
type ChatRequest struct {
	Message string `json:"message" form:"input"`
}

// ChatResponse represents the bot answer for one message
type ChatResponse struct {
	BotResponse       string            `json:"bot_response"`
	Confidence        float64           `json:"confidence"`
	ConfidencePercent float64           `json:"confidence_percent"`
	Source            string            `json:"source"`
	Intent            Intent            `json:"intent"`
	Context           *ExtractedContext `json:"context,omitempty"`
	Suggestions       []string          `json:"suggestions,omitempty"`
	Weather           *WeatherReport    `json:"weather,omitempty"`
	Timestamp         string            `json:"timestamp"`
}

// HistoryResponse lists the turns of a session in order
type HistoryResponse struct {
	Turns []Turn `json:"turns"`
	Total int    `json:"total"`
}

// StatsResponse holds the derived views of a session log
type StatsResponse struct {
	Turns             int            `json:"turns"`
	AverageConfidence float64        `json:"average_confidence"`
	SourceCounts      map[string]int `json:"source_counts"`
}

// WeatherReport represents current conditions for a city
type WeatherReport struct {
	City        string          `json:"city"`
	Temperature float64         `json:"temperature"`
	Humidity    int             `json:"humidity"`
	Description string          `json:"description"`
	Alerts      []string        `json:"alerts,omitempty"`
	Forecast    []ForecastEntry `json:"forecast,omitempty"`
}

// ForecastEntry is one step of the multi-day forecast
type ForecastEntry struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
}

// KnowledgeBundle is the import format of the knowledge base
type KnowledgeBundle struct {
	Crops       []CropImport       `json:"crops"`
	Soils       []SoilImport       `json:"soils"`
	Diseases    []DiseaseImport    `json:"diseases"`
	Pests       []PestImport       `json:"pests"`
	Fertilizers []FertilizerImport `json:"fertilizers,omitempty"`
}

// CropImport is a crop with its planting periods and soils
type CropImport struct {
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	CycleDays   int            `json:"cycle_days"`
	Description string         `json:"description"`
	SoilTypes   []string       `json:"soil_types"`
	Tips        []string       `json:"tips"`
	Periods     []PeriodRecord `json:"periods"`
	Soils       []string       `json:"soils"`
}

// SoilImport is a soil type to import
type SoilImport struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DiseaseImport is a disease with the crops it affects
type DiseaseImport struct {
	Name       string   `json:"name"`
	Symptoms   string   `json:"symptoms"`
	Treatments []string `json:"treatments"`
	Crops      []string `json:"crops"`
}

// PestImport is a pest with the crops it attacks
type PestImport struct {
	Name     string   `json:"name"`
	Damage   string   `json:"damage"`
	Controls []string `json:"controls"`
	Crops    []string `json:"crops"`
}

// FertilizerImport is a fertilizer with its per-crop recommendations
type FertilizerImport struct {
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Composition     string          `json:"composition,omitempty"`
	Description     string          `json:"description,omitempty"`
	ApplicationMode string          `json:"application_mode,omitempty"`
	Precautions     string          `json:"precautions,omitempty"`
	Uses            []FertilizerUse `json:"uses,omitempty"`
}

// FertilizerUse recommends a fertilizer for one crop
type FertilizerUse struct {
	Crop      string `json:"crop"`
	Stage     string `json:"stage,omitempty"`
	Dose      string `json:"dose,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Method    string `json:"method,omitempty"`
}
