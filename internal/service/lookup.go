package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agribot/internal/model"

	"go.uber.org/zap"
)

// KnowledgeStore is the read side of the knowledge base.
// "No data" is a nil/empty result with a nil error.
type KnowledgeStore interface {
	FindCropMention(ctx context.Context, text string) (*model.Crop, error)
	GetPlantingPeriods(ctx context.Context, cropName string) ([]model.PeriodRecord, error)
	FindSoilMention(ctx context.Context, text string) (*model.SoilRecord, error)
	SoilNames(ctx context.Context) ([]string, error)
}

const noSuitableCrops = "plusieurs cultures adaptées"

// KnowledgeLookup wraps a KnowledgeStore with a per-query timeout and the
// record validation the composer relies on
type KnowledgeLookup struct {
	store   KnowledgeStore
	timeout time.Duration
	logger  *zap.Logger
}

// NewKnowledgeLookup creates a lookup. A timeout <= 0 disables the deadline.
func NewKnowledgeLookup(store KnowledgeStore, timeout time.Duration, logger *zap.Logger) *KnowledgeLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KnowledgeLookup{store: store, timeout: timeout, logger: logger}
}

func (l *KnowledgeLookup) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.timeout)
}

// FindCropMention returns the registered crop named in text, nil when none
func (l *KnowledgeLookup) FindCropMention(ctx context.Context, text string) (*model.Crop, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	crop, err := l.store.FindCropMention(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("find crop mention: %w", err)
	}
	return crop, nil
}

// GetPlantingPeriods returns the valid planting windows of a crop. Rows whose
// months fall outside 1-12 are dropped.
func (l *KnowledgeLookup) GetPlantingPeriods(ctx context.Context, cropName string) ([]model.PeriodRecord, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	rows, err := l.store.GetPlantingPeriods(ctx, cropName)
	if err != nil {
		return nil, fmt.Errorf("get planting periods for %s: %w", cropName, err)
	}

	periods := make([]model.PeriodRecord, 0, len(rows))
	for _, p := range rows {
		if p.MonthStart < 1 || p.MonthStart > 12 || p.MonthEnd < 1 || p.MonthEnd > 12 {
			l.logger.Warn("skipping malformed planting period",
				zap.String("crop", cropName),
				zap.String("region", p.Region),
				zap.Int("month_start", p.MonthStart),
				zap.Int("month_end", p.MonthEnd))
			continue
		}
		periods = append(periods, p)
	}
	return periods, nil
}

// GetSoilAdvice returns the description and suitable crops of the soil named
// in text, or "" when no known soil is mentioned
func (l *KnowledgeLookup) GetSoilAdvice(ctx context.Context, text string) (string, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()

	soil, err := l.store.FindSoilMention(ctx, text)
	if err != nil {
		return "", fmt.Errorf("find soil mention: %w", err)
	}
	if soil == nil {
		return "", nil
	}
	return FormatSoilAdvice(soil), nil
}

// SoilNames lists the soil names of the store
func (l *KnowledgeLookup) SoilNames(ctx context.Context) ([]string, error) {
	ctx, cancel := l.withTimeout(ctx)
	defer cancel()
	return l.store.SoilNames(ctx)
}

// FormatSoilAdvice renders a soil record as a chat answer
func FormatSoilAdvice(soil *model.SoilRecord) string {
	crops := noSuitableCrops
	if len(soil.SuitableCrops) > 0 {
		crops = strings.Join(soil.SuitableCrops, ", ")
	}

	description := ""
	if soil.Description != nil {
		description = *soil.Description
	}

	return fmt.Sprintf("🌱 **Sol %s**\n\n%s\n\n✅ Cultures adaptées : %s.", soil.Name, description, crops)
}
