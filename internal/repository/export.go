package repository

import (
	"context"
	"fmt"

	"agribot/internal/model"

	"go.uber.org/zap"
)

// Export dumps the whole store as a bundle that Import accepts
func (r *KnowledgeRepository) Export(ctx context.Context) (*model.KnowledgeBundle, error) {
	bundle := &model.KnowledgeBundle{
		Crops:       []model.CropImport{},
		Soils:       []model.SoilImport{},
		Diseases:    []model.DiseaseImport{},
		Pests:       []model.PestImport{},
		Fertilizers: []model.FertilizerImport{},
	}

	soils, err := r.ListSoils(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range soils {
		bundle.Soils = append(bundle.Soils, model.SoilImport{Name: s.Name, Description: deref(s.Description)})
	}

	crops, err := r.ListCrops(ctx)
	if err != nil {
		return nil, err
	}
	periodQuery := r.db.Rebind(`
		SELECT region, month_start, month_end, advice
		FROM planting_periods WHERE crop_id = ? ORDER BY id
	`)
	soilQuery := r.db.Rebind(`
		SELECT s.name FROM soils s
		JOIN crop_soils cs ON cs.soil_id = s.id
		WHERE cs.crop_id = ?
		ORDER BY s.name
	`)
	for _, c := range crops {
		item := model.CropImport{
			Name:        c.Name,
			Type:        deref(c.Type),
			Description: deref(c.Description),
			SoilTypes:   []string(c.SoilTypes),
			Tips:        []string(c.Tips),
			Periods:     []model.PeriodRecord{},
			Soils:       []string{},
		}
		if c.CycleDays != nil {
			item.CycleDays = *c.CycleDays
		}
		if err := r.db.SelectContext(ctx, &item.Periods, periodQuery, c.ID); err != nil {
			return nil, fmt.Errorf("failed to export periods of %q: %w", c.Name, err)
		}
		if err := r.db.SelectContext(ctx, &item.Soils, soilQuery, c.ID); err != nil {
			return nil, fmt.Errorf("failed to export soils of %q: %w", c.Name, err)
		}
		bundle.Crops = append(bundle.Crops, item)
	}

	var diseases []model.Disease
	if err := r.db.SelectContext(ctx, &diseases, `SELECT id, name, symptoms, treatments FROM diseases ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to export diseases: %w", err)
	}
	for _, d := range diseases {
		names, err := r.linkedCrops(ctx, "crop_diseases", "disease_id", d.ID)
		if err != nil {
			return nil, err
		}
		bundle.Diseases = append(bundle.Diseases, model.DiseaseImport{
			Name:       d.Name,
			Symptoms:   deref(d.Symptoms),
			Treatments: []string(d.Treatments),
			Crops:      names,
		})
	}

	var pests []model.Pest
	if err := r.db.SelectContext(ctx, &pests, `SELECT id, name, damage, controls FROM pests ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to export pests: %w", err)
	}
	for _, p := range pests {
		names, err := r.linkedCrops(ctx, "crop_pests", "pest_id", p.ID)
		if err != nil {
			return nil, err
		}
		bundle.Pests = append(bundle.Pests, model.PestImport{
			Name:     p.Name,
			Damage:   deref(p.Damage),
			Controls: []string(p.Controls),
			Crops:    names,
		})
	}

	var fertilizers []model.Fertilizer
	fertilizerQuery := `
		SELECT id, name, fertilizer_type, composition, description, application_mode, precautions
		FROM fertilizers ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &fertilizers, fertilizerQuery); err != nil {
		return nil, fmt.Errorf("failed to export fertilizers: %w", err)
	}
	useQuery := r.db.Rebind(`
		SELECT c.name, cf.stage, cf.dose, cf.frequency, cf.method
		FROM crop_fertilizers cf
		JOIN crops c ON c.id = cf.crop_id
		WHERE cf.fertilizer_id = ?
		ORDER BY c.name
	`)
	for _, f := range fertilizers {
		var rows []struct {
			Crop      string  `db:"name"`
			Stage     *string `db:"stage"`
			Dose      *string `db:"dose"`
			Frequency *string `db:"frequency"`
			Method    *string `db:"method"`
		}
		if err := r.db.SelectContext(ctx, &rows, useQuery, f.ID); err != nil {
			return nil, fmt.Errorf("failed to export uses of %q: %w", f.Name, err)
		}
		item := model.FertilizerImport{
			Name:            f.Name,
			Type:            f.Type,
			Composition:     deref(f.Composition),
			Description:     deref(f.Description),
			ApplicationMode: deref(f.ApplicationMode),
			Precautions:     deref(f.Precautions),
			Uses:            []model.FertilizerUse{},
		}
		for _, row := range rows {
			item.Uses = append(item.Uses, model.FertilizerUse{
				Crop:      row.Crop,
				Stage:     deref(row.Stage),
				Dose:      deref(row.Dose),
				Frequency: deref(row.Frequency),
				Method:    deref(row.Method),
			})
		}
		bundle.Fertilizers = append(bundle.Fertilizers, item)
	}

	r.logger.Info("knowledge export finished",
		zap.Int("crops", len(bundle.Crops)),
		zap.Int("soils", len(bundle.Soils)),
		zap.Int("diseases", len(bundle.Diseases)),
		zap.Int("pests", len(bundle.Pests)),
		zap.Int("fertilizers", len(bundle.Fertilizers)))
	return bundle, nil
}

func (r *KnowledgeRepository) linkedCrops(ctx context.Context, linkTable, column string, id int64) ([]string, error) {
	query := r.db.Rebind(fmt.Sprintf(`
		SELECT c.name FROM crops c
		JOIN %s l ON l.crop_id = c.id
		WHERE l.%s = ?
		ORDER BY c.name
	`, linkTable, column))

	names := []string{}
	if err := r.db.SelectContext(ctx, &names, query, id); err != nil {
		return nil, fmt.Errorf("failed to export %s links: %w", linkTable, err)
	}
	return names, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
