package repository

import (
	"context"
	"fmt"
	"strings"

	"agribot/internal/model"

	"go.uber.org/zap"
)

// Search limits per category
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search looks keyword up in crop names, descriptions and types, disease names
// and symptoms, and pest names and damage. Each category holds at most limit
// hits ordered by name.
func (r *KnowledgeRepository) Search(ctx context.Context, keyword string, limit int) (*model.SearchResults, error) {
	keyword = strings.TrimSpace(keyword)
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	results := &model.SearchResults{
		Query:    keyword,
		Crops:    []model.SearchHit{},
		Diseases: []model.SearchHit{},
		Pests:    []model.SearchHit{},
	}
	if keyword == "" {
		return results, nil
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"

	cropQuery := r.db.Rebind(`
		SELECT id, name, crop_type AS kind, description
		FROM crops
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		   OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\'
		   OR LOWER(COALESCE(crop_type, '')) LIKE ? ESCAPE '\'
		ORDER BY name
		LIMIT ?
	`)
	if err := r.db.SelectContext(ctx, &results.Crops, cropQuery, pattern, pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search crops: %w", err)
	}

	diseaseQuery := r.db.Rebind(`
		SELECT id, name, symptoms AS description
		FROM diseases
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		   OR LOWER(COALESCE(symptoms, '')) LIKE ? ESCAPE '\'
		ORDER BY name
		LIMIT ?
	`)
	if err := r.db.SelectContext(ctx, &results.Diseases, diseaseQuery, pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search diseases: %w", err)
	}

	pestQuery := r.db.Rebind(`
		SELECT id, name, damage AS description
		FROM pests
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		   OR LOWER(COALESCE(damage, '')) LIKE ? ESCAPE '\'
		ORDER BY name
		LIMIT ?
	`)
	if err := r.db.SelectContext(ctx, &results.Pests, pestQuery, pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search pests: %w", err)
	}

	r.logger.Debug("keyword search",
		zap.String("keyword", keyword),
		zap.Int("crops", len(results.Crops)),
		zap.Int("diseases", len(results.Diseases)),
		zap.Int("pests", len(results.Pests)))
	return results, nil
}
