package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"agribot/internal/metrics"
	"agribot/internal/model"
	"agribot/internal/utils"
	"agribot/internal/vocab"

	"go.uber.org/zap"
)

var digitsRe = regexp.MustCompile(`[0-9]+`)

// SoilNameSource lists the soil names known to the knowledge store
type SoilNameSource interface {
	SoilNames(ctx context.Context) ([]string, error)
}

// EntityExtractor pulls crop, city, soil type, quantity and tone out of a message
type EntityExtractor struct {
	vocab       *vocab.Vocabulary
	soils       SoilNameSource
	fuzzyCutoff float64
	cities      []string // lowered, same order as vocab.Cities
	logger      *zap.Logger
}

// NewEntityExtractor creates an extractor. soils may be nil, in which case no
// soil type is ever extracted.
func NewEntityExtractor(v *vocab.Vocabulary, soils SoilNameSource, fuzzyCutoff float64, logger *zap.Logger) *EntityExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	cities := make([]string, len(v.Cities))
	for i, c := range v.Cities {
		cities[i] = strings.ToLower(c)
	}
	return &EntityExtractor{
		vocab:       v,
		soils:       soils,
		fuzzyCutoff: fuzzyCutoff,
		cities:      cities,
		logger:      logger,
	}
}

// Extract builds the context of one message. It never fails: anything that
// cannot be found is left nil.
func (e *EntityExtractor) Extract(ctx context.Context, text string, previous *model.Turn) model.ExtractedContext {
	extracted := model.ExtractedContext{
		Crop:     e.ExtractCrop(text),
		City:     e.ExtractCity(text),
		SoilType: e.ExtractSoilType(ctx, text),
		Quantity: e.ExtractQuantity(text),
		Tone:     e.DetectTone(text),
	}
	if previous != nil {
		extracted.PriorCrop = e.ExtractCrop(previous.UserText)
	}
	return extracted
}

// ExtractCrop returns the standard name of the first crop, in table order,
// with an alias contained in text
func (e *EntityExtractor) ExtractCrop(text string) *string {
	lowered := strings.ToLower(text)
	for _, crop := range e.vocab.Crops {
		if utils.ContainsAny(lowered, crop.Aliases) {
			name := crop.Name
			return &name
		}
	}
	return nil
}

// ExtractCity looks for a known city, first literally and then by fuzzy
// matching each word of text
func (e *EntityExtractor) ExtractCity(text string) *string {
	lowered := strings.ToLower(text)
	for i, city := range e.cities {
		if city != "" && strings.Contains(lowered, city) {
			name := e.vocab.Cities[i]
			return &name
		}
	}

	for _, word := range strings.Fields(lowered) {
		word = strings.Trim(word, ".,;:!?'\"()")
		if word == "" {
			continue
		}
		if match, ok := utils.ClosestMatch(word, e.cities, e.fuzzyCutoff); ok {
			for i, city := range e.cities {
				if city == match {
					name := e.vocab.Cities[i]
					return &name
				}
			}
		}
	}
	return nil
}

// ExtractSoilType returns the first soil name of the knowledge store contained
// in text. A store failure is logged and reported as no soil.
func (e *EntityExtractor) ExtractSoilType(ctx context.Context, text string) *string {
	if e.soils == nil {
		return nil
	}

	names, err := e.soils.SoilNames(ctx)
	if err != nil {
		metrics.IncStoreError("soil_names")
		e.logger.Warn("soil names unavailable", zap.Error(err))
		return nil
	}

	lowered := strings.ToLower(text)
	for _, name := range names {
		if name != "" && strings.Contains(lowered, strings.ToLower(name)) {
			found := name
			return &found
		}
	}
	return nil
}

// ExtractQuantity parses the first run of digits in text
func (e *EntityExtractor) ExtractQuantity(text string) *int {
	digits := digitsRe.FindString(text)
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// DetectTone tags a message urgent, polite or neutral. Urgency wins.
func (e *EntityExtractor) DetectTone(text string) model.Tone {
	lowered := strings.ToLower(text)
	switch {
	case utils.ContainsAny(lowered, e.vocab.UrgencyKeywords):
		return model.ToneUrgent
	case utils.ContainsAny(lowered, e.vocab.PolitenessKeywords):
		return model.TonePolite
	default:
		return model.ToneNeutral
	}
}
