// Package vocab holds the fixed keyword tables the chatbot reasons with.
//
// A Vocabulary is built once (Default or Load) and then only read. Callers
// that need an alternate vocabulary build a new value instead of mutating a
// shared one.
package vocab

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"agribot/internal/model"
)

// CropAliases maps a standard crop name to the spellings users type
type CropAliases struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// Suggestions holds the follow-up question templates. %s is the crop name.
type Suggestions struct {
	Crop            []string `yaml:"crop"`
	Weather         []string `yaml:"weather"`
	WeatherKeywords []string `yaml:"weather_keywords"`
}

// Vocabulary is the immutable configuration of classifier, extractor and composer
type Vocabulary struct {
	GreetingKeywords   []string              `yaml:"greeting_keywords"`
	ThanksKeywords     []string              `yaml:"thanks_keywords"`
	PlantingKeywords   []string              `yaml:"planting_keywords"`
	SoilTypes          []string              `yaml:"soil_types"`
	Categories         []model.CategoryBlock `yaml:"categories"`
	Crops              []CropAliases         `yaml:"crops"`
	Cities             []string              `yaml:"cities"`
	UrgencyKeywords    []string              `yaml:"urgency_keywords"`
	PolitenessKeywords []string              `yaml:"politeness_keywords"`
	MonthNames         []string              `yaml:"month_names"`
	GreetingText       string                `yaml:"greeting_text"`
	FallbackText       string                `yaml:"fallback_text"`
	Suggestions        Suggestions           `yaml:"suggestions"`
}

// Load reads a YAML vocabulary file. Keys absent from the file keep their
// default values.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}

	v := Default()
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("parsing vocabulary %s: %w", path, err)
	}
	v.normalize()

	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vocabulary %s: %w", path, err)
	}
	return v, nil
}

// Validate checks the invariants the classifier and composer rely on
func (v *Vocabulary) Validate() error {
	if len(v.MonthNames) != 12 {
		return fmt.Errorf("month_names must have 12 entries, got %d", len(v.MonthNames))
	}
	if strings.TrimSpace(v.GreetingText) == "" || strings.TrimSpace(v.FallbackText) == "" {
		return fmt.Errorf("greeting_text and fallback_text are required")
	}

	seen := make(map[string]bool, len(v.Categories))
	for _, c := range v.Categories {
		if c.Name == "" {
			return fmt.Errorf("category without name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate category %q", c.Name)
		}
		seen[c.Name] = true
		if !c.Intent.Valid() {
			return fmt.Errorf("category %q: unknown intent %q", c.Name, c.Intent)
		}
		if c.Confidence < 0 || c.Confidence > 1 {
			return fmt.Errorf("category %q: confidence %.2f outside [0,1]", c.Name, c.Confidence)
		}
		if c.Source == "" {
			return fmt.Errorf("category %q: source is required", c.Name)
		}
	}

	for _, crop := range v.Crops {
		if crop.Name == "" || len(crop.Aliases) == 0 {
			return fmt.Errorf("crop entries need a name and at least one alias")
		}
	}

	// crop suggestions are rendered with fmt.Sprintf(tmpl, cropName)
	for _, tmpl := range v.Suggestions.Crop {
		verbs := strings.Count(strings.ReplaceAll(tmpl, "%%", ""), "%")
		if strings.Count(tmpl, "%s") != 1 || verbs != 1 {
			return fmt.Errorf("crop suggestion %q must contain exactly one %%s", tmpl)
		}
	}
	return nil
}

// MonthName returns the name of month m (1-12), or "" when out of range
func (v *Vocabulary) MonthName(m int) string {
	if m < 1 || m > len(v.MonthNames) {
		return ""
	}
	return v.MonthNames[m-1]
}

// normalize lower-cases every keyword so matching can run on lowered text
func (v *Vocabulary) normalize() {
	lowerAll := func(in []string) []string {
		out := make([]string, 0, len(in))
		for _, s := range in {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	v.GreetingKeywords = lowerAll(v.GreetingKeywords)
	v.ThanksKeywords = lowerAll(v.ThanksKeywords)
	v.PlantingKeywords = lowerAll(v.PlantingKeywords)
	v.SoilTypes = lowerAll(v.SoilTypes)
	v.UrgencyKeywords = lowerAll(v.UrgencyKeywords)
	v.PolitenessKeywords = lowerAll(v.PolitenessKeywords)
	v.Suggestions.WeatherKeywords = lowerAll(v.Suggestions.WeatherKeywords)
	for i := range v.Categories {
		v.Categories[i].Keywords = lowerAll(v.Categories[i].Keywords)
	}
	for i := range v.Crops {
		v.Crops[i].Aliases = lowerAll(v.Crops[i].Aliases)
	}
}
