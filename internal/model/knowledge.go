package model

import (
	"database/sql/driver"
	"encoding/json"

	"agribot/internal/utils"
)

// Crop represents a registered crop of the knowledge base
type Crop struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Type        *string   `json:"type,omitempty" db:"crop_type"`
	CycleDays   *int      `json:"cycle_days,omitempty" db:"cycle_days"`
	Description *string   `json:"description,omitempty" db:"description"`
	SoilTypes   JSONArray `json:"soil_types,omitempty" db:"soil_types"`
	Tips        JSONArray `json:"tips,omitempty" db:"tips"`
}

// PeriodRecord is one planting window of a crop in a region
type PeriodRecord struct {
	Region     string  `json:"region" db:"region"`
	MonthStart int     `json:"month_start" db:"month_start"`
	MonthEnd   int     `json:"month_end" db:"month_end"`
	Advice     *string `json:"advice,omitempty" db:"advice"`
	CycleDays  *int    `json:"cycle_days,omitempty" db:"cycle_days"`
}

// SoilRecord is a soil type with the crops suited to it
type SoilRecord struct {
	ID            int64    `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	Description   *string  `json:"description,omitempty" db:"description"`
	SuitableCrops []string `json:"suitable_crops" db:"-"`
}

// Disease is a plant disease linked to crops
type Disease struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Symptoms   *string   `json:"symptoms,omitempty" db:"symptoms"`
	Treatments JSONArray `json:"treatments,omitempty" db:"treatments"`
}

// Pest is a crop pest with its control methods
type Pest struct {
	ID       int64     `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Damage   *string   `json:"damage,omitempty" db:"damage"`
	Controls JSONArray `json:"controls,omitempty" db:"controls"`
}

// CropProfile aggregates everything known about one crop
type CropProfile struct {
	Crop
	Periods     []PeriodRecord   `json:"periods"`
	Soils       []string         `json:"soils"`
	Diseases    []Disease        `json:"diseases"`
	Pests       []Pest           `json:"pests"`
	Fertilizers []CropFertilizer `json:"fertilizers"`
}

// Fertilizer is an organic or mineral input
type Fertilizer struct {
	ID              int64   `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	Type            string  `json:"type" db:"fertilizer_type"`
	Composition     *string `json:"composition,omitempty" db:"composition"`
	Description     *string `json:"description,omitempty" db:"description"`
	ApplicationMode *string `json:"application_mode,omitempty" db:"application_mode"`
	Precautions     *string `json:"precautions,omitempty" db:"precautions"`
}

// CropFertilizer is a fertilizer as recommended for one crop
type CropFertilizer struct {
	Fertilizer
	Stage     *string `json:"stage,omitempty" db:"stage"`
	Dose      *string `json:"dose,omitempty" db:"dose"`
	Frequency *string `json:"frequency,omitempty" db:"frequency"`
	Method    *string `json:"method,omitempty" db:"method"`
}

// SearchHit is one keyword search match
type SearchHit struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Kind        *string `json:"kind,omitempty" db:"kind"`
	Description *string `json:"description,omitempty" db:"description"`
}

// SearchResults groups keyword search matches by category
type SearchResults struct {
	Query    string      `json:"query"`
	Crops    []SearchHit `json:"crops"`
	Diseases []SearchHit `json:"diseases"`
	Pests    []SearchHit `json:"pests"`
}

// CategoryBlock is a static knowledge block answered by keyword hits
type CategoryBlock struct {
	Name       string   `json:"name" yaml:"name"`
	Intent     Intent   `json:"intent" yaml:"intent"`
	Keywords   []string `json:"keywords" yaml:"keywords"`
	Response   string   `json:"response" yaml:"response"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Source     string   `json:"source" yaml:"source"`
}

// JSONArray represents a JSON list column.
// Malformed stored values decode to an empty list instead of failing the row.
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*j = JSONArray{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		*j = JSONArray{}
		return nil
	}
	*j = utils.ParseStoredList(raw)
	return nil
}
