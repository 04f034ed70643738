package service

import (
	"strings"

	"agribot/internal/model"
	"agribot/internal/utils"
	"agribot/internal/vocab"
)

// IntentClassifier maps a message to an intent by keyword containment
type IntentClassifier struct {
	vocab  *vocab.Vocabulary
	ranker *CategoryRanker
}

// NewIntentClassifier creates a classifier over the given vocabulary
func NewIntentClassifier(v *vocab.Vocabulary) *IntentClassifier {
	return &IntentClassifier{
		vocab:  v,
		ranker: NewCategoryRanker(v.Categories),
	}
}

// Classify returns the intent of text. Precedence: greeting, thanks,
// planting, literal soil type, then the generic category with most hits.
func (c *IntentClassifier) Classify(text string) model.Intent {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return model.IntentUnknown
	}

	switch {
	case utils.ContainsAny(lowered, c.vocab.GreetingKeywords):
		return model.IntentGreeting
	case utils.ContainsAny(lowered, c.vocab.ThanksKeywords):
		return model.IntentThanks
	case utils.ContainsAny(lowered, c.vocab.PlantingKeywords):
		return model.IntentPlantingInquiry
	case utils.ContainsAny(lowered, c.vocab.SoilTypes):
		return model.IntentSoilInquiry
	}

	if block, ok := c.ranker.Best(lowered); ok {
		return block.Intent
	}
	return model.IntentUnknown
}
