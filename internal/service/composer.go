package service

import (
	"context"
	"fmt"
	"strings"

	"agribot/internal/metrics"
	"agribot/internal/model"
	"agribot/internal/utils"
	"agribot/internal/vocab"

	"go.uber.org/zap"
)

// Confidence and source of the built-in answer tiers
const (
	ConfidenceGreeting = 0.95
	ConfidencePlanting = 0.96
	ConfidenceSoil     = 0.93
	ConfidenceFallback = 0.50

	SourceGreeting = "greeting"
	SourceCrops    = "knowledge-store (crops)"
	SourceSoils    = "knowledge-store (soils)"
	SourceSystem   = "system"
)

// ResponseComposer picks the answer to a message by walking a fixed ladder:
// greeting, planting periods, soil advice, static category, fallback.
type ResponseComposer struct {
	vocab          *vocab.Vocabulary
	classifier     *IntentClassifier
	ranker         *CategoryRanker
	lookup         *KnowledgeLookup
	maxSuggestions int
	logger         *zap.Logger
}

// NewResponseComposer creates a composer. lookup may be nil, in which case
// the knowledge store tiers are skipped.
func NewResponseComposer(v *vocab.Vocabulary, lookup *KnowledgeLookup, maxSuggestions int, logger *zap.Logger) *ResponseComposer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseComposer{
		vocab:          v,
		classifier:     NewIntentClassifier(v),
		ranker:         NewCategoryRanker(v.Categories),
		lookup:         lookup,
		maxSuggestions: maxSuggestions,
		logger:         logger,
	}
}

// Compose answers text. It always returns a reply; store failures and missing
// data fall through to the next tier.
func (c *ResponseComposer) Compose(ctx context.Context, text string) model.Reply {
	lowered := strings.ToLower(strings.TrimSpace(text))

	reply := c.compose(ctx, lowered)
	reply.Intent = c.classifier.Classify(lowered)
	reply.Text = utils.FormatResponse(reply.Text)
	return reply
}

func (c *ResponseComposer) compose(ctx context.Context, lowered string) model.Reply {
	if utils.ContainsAny(lowered, c.vocab.GreetingKeywords) {
		return model.Reply{Text: c.vocab.GreetingText, Confidence: ConfidenceGreeting, Source: SourceGreeting}
	}

	if c.lookup != nil {
		if utils.ContainsAny(lowered, c.vocab.PlantingKeywords) {
			if text, ok := c.plantingAnswer(ctx, lowered); ok {
				return model.Reply{Text: text, Confidence: ConfidencePlanting, Source: SourceCrops}
			}
		}

		advice, err := c.lookup.GetSoilAdvice(ctx, lowered)
		if err != nil {
			metrics.IncStoreError("soil_advice")
			c.logger.Warn("soil lookup failed, falling through", zap.Error(err))
		} else if advice != "" {
			return model.Reply{Text: advice, Confidence: ConfidenceSoil, Source: SourceSoils}
		}
	}

	if block, ok := c.ranker.Best(lowered); ok {
		return model.Reply{Text: block.Response, Confidence: block.Confidence, Source: block.Source}
	}

	return model.Reply{Text: c.vocab.FallbackText, Confidence: ConfidenceFallback, Source: SourceSystem}
}

// plantingAnswer builds the planting calendar of the crop named in lowered
func (c *ResponseComposer) plantingAnswer(ctx context.Context, lowered string) (string, bool) {
	crop, err := c.lookup.FindCropMention(ctx, lowered)
	if err != nil {
		metrics.IncStoreError("crop_mention")
		c.logger.Warn("crop lookup failed, falling through", zap.Error(err))
		return "", false
	}
	if crop == nil {
		return "", false
	}

	periods, err := c.lookup.GetPlantingPeriods(ctx, crop.Name)
	if err != nil {
		metrics.IncStoreError("planting_periods")
		c.logger.Warn("planting lookup failed, falling through", zap.String("crop", crop.Name), zap.Error(err))
		return "", false
	}
	if len(periods) == 0 {
		return "", false
	}

	return c.FormatPlantingPeriods(crop.Name, periods), true
}

// FormatPlantingPeriods renders the planting windows of a crop. The cycle
// length comes from the first period.
func (c *ResponseComposer) FormatPlantingPeriods(cropName string, periods []model.PeriodRecord) string {
	lines := make([]string, 0, len(periods)*2)
	for _, p := range periods {
		lines = append(lines, fmt.Sprintf("• **Région %s** : %s - %s.",
			p.Region, utils.TitleCase(c.vocab.MonthName(p.MonthStart)), c.vocab.MonthName(p.MonthEnd)))
		if p.Advice != nil && strings.TrimSpace(*p.Advice) != "" {
			lines = append(lines, "  → "+*p.Advice)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 **Périodes de plantation pour le %s :**\n\n", cropName)
	b.WriteString(strings.Join(lines, "\n"))
	if len(periods) > 0 && periods[0].CycleDays != nil && *periods[0].CycleDays > 0 {
		fmt.Fprintf(&b, "\n\n⏱️ Durée approximative du cycle : **%d jours**.", *periods[0].CycleDays)
	}
	return b.String()
}

// Suggest proposes follow-up questions about the crop of the message (or of
// the previous one) and about the weather
func (c *ResponseComposer) Suggest(text string, extracted model.ExtractedContext) []string {
	suggestions := []string{}

	crop := extracted.Crop
	if crop == nil {
		crop = extracted.PriorCrop
	}
	if crop != nil {
		for _, tmpl := range c.vocab.Suggestions.Crop {
			suggestions = append(suggestions, fmt.Sprintf(tmpl, *crop))
		}
	}

	if utils.ContainsAny(strings.ToLower(text), c.vocab.Suggestions.WeatherKeywords) {
		suggestions = append(suggestions, c.vocab.Suggestions.Weather...)
	}

	if c.maxSuggestions >= 0 && len(suggestions) > c.maxSuggestions {
		suggestions = suggestions[:c.maxSuggestions]
	}
	return suggestions
}
