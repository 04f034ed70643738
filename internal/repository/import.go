package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"agribot/internal/model"

	"github.com/hashicorp/go-multierror"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ImportResult counts the records written by an import
type ImportResult struct {
	Crops       int `json:"crops"`
	Periods     int `json:"periods"`
	Soils       int `json:"soils"`
	Diseases    int `json:"diseases"`
	Pests       int `json:"pests"`
	Fertilizers int `json:"fertilizers"`
	Links       int `json:"links"`
}

// Import upserts a knowledge bundle. Records are written one by one; a failing
// record is skipped and reported in the returned error while the rest of the
// bundle is still imported. A crop's planting periods are replaced, never merged.
func (r *KnowledgeRepository) Import(ctx context.Context, bundle *model.KnowledgeBundle) (ImportResult, error) {
	var result ImportResult
	var errs *multierror.Error
	if bundle == nil {
		return result, nil
	}

	for _, soil := range bundle.Soils {
		if err := r.importSoil(ctx, soil); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("soil %q: %w", soil.Name, err))
			continue
		}
		result.Soils++
	}

	for _, crop := range bundle.Crops {
		periods, links, err := r.importCrop(ctx, crop)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("crop %q: %w", crop.Name, err))
			continue
		}
		result.Crops++
		result.Periods += periods
		result.Links += links
	}

	for _, disease := range bundle.Diseases {
		links, err := r.importDisease(ctx, disease)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("disease %q: %w", disease.Name, err))
			continue
		}
		result.Diseases++
		result.Links += links
	}

	for _, pest := range bundle.Pests {
		links, err := r.importPest(ctx, pest)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("pest %q: %w", pest.Name, err))
			continue
		}
		result.Pests++
		result.Links += links
	}

	for _, fertilizer := range bundle.Fertilizers {
		links, err := r.importFertilizer(ctx, fertilizer)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("fertilizer %q: %w", fertilizer.Name, err))
			continue
		}
		result.Fertilizers++
		result.Links += links
	}

	r.logger.Info("knowledge import finished",
		zap.Int("crops", result.Crops),
		zap.Int("periods", result.Periods),
		zap.Int("soils", result.Soils),
		zap.Int("diseases", result.Diseases),
		zap.Int("pests", result.Pests),
		zap.Int("fertilizers", result.Fertilizers),
		zap.Int("links", result.Links),
		zap.Int("failed", failed(errs)))

	return result, errs.ErrorOrNil()
}

// Seed imports the built-in sample data when the store holds no crop yet
func (r *KnowledgeRepository) Seed(ctx context.Context) (bool, error) {
	total, err := r.CountCrops(ctx)
	if err != nil {
		return false, err
	}
	if total > 0 {
		return false, nil
	}

	if _, err := r.Import(ctx, DefaultBundle()); err != nil {
		return true, fmt.Errorf("failed to seed knowledge store: %w", err)
	}
	return true, nil
}

func (r *KnowledgeRepository) importSoil(ctx context.Context, soil model.SoilImport) error {
	if strings.TrimSpace(soil.Name) == "" {
		return errors.New("name is required")
	}
	query := r.db.Rebind(`
		INSERT INTO soils (name, description) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET description = excluded.description
	`)
	if _, err := r.db.ExecContext(ctx, query, strings.ToLower(strings.TrimSpace(soil.Name)), nullString(soil.Description)); err != nil {
		return fmt.Errorf("failed to upsert soil: %w", err)
	}
	return nil
}

func (r *KnowledgeRepository) importCrop(ctx context.Context, crop model.CropImport) (int, int, error) {
	name := strings.TrimSpace(crop.Name)
	if name == "" {
		return 0, 0, errors.New("name is required")
	}
	for _, p := range crop.Periods {
		if !validMonth(p.MonthStart) || !validMonth(p.MonthEnd) {
			return 0, 0, fmt.Errorf("period %q: months must be between 1 and 12, got %d-%d", p.Region, p.MonthStart, p.MonthEnd)
		}
		if strings.TrimSpace(p.Region) == "" {
			return 0, 0, errors.New("period region is required")
		}
	}

	var periods, links int
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var cycle interface{}
		if crop.CycleDays > 0 {
			cycle = crop.CycleDays
		}

		var cropID int64
		upsert := tx.Rebind(`
			INSERT INTO crops (name, crop_type, cycle_days, description, soil_types, tips)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (name) DO UPDATE SET
				crop_type = excluded.crop_type,
				cycle_days = excluded.cycle_days,
				description = excluded.description,
				soil_types = excluded.soil_types,
				tips = excluded.tips
			RETURNING id
		`)
		err := tx.GetContext(ctx, &cropID, upsert,
			name,
			nullString(crop.Type),
			cycle,
			nullString(crop.Description),
			model.JSONArray(crop.SoilTypes),
			model.JSONArray(crop.Tips),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert crop: %w", err)
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM planting_periods WHERE crop_id = ?`), cropID); err != nil {
			return fmt.Errorf("failed to clear planting periods: %w", err)
		}
		insertPeriod := tx.Rebind(`
			INSERT INTO planting_periods (crop_id, region, month_start, month_end, advice)
			VALUES (?, ?, ?, ?, ?)
		`)
		for _, p := range crop.Periods {
			if _, err := tx.ExecContext(ctx, insertPeriod, cropID, strings.TrimSpace(p.Region), p.MonthStart, p.MonthEnd, p.Advice); err != nil {
				return fmt.Errorf("failed to insert planting period %q: %w", p.Region, err)
			}
			periods++
		}

		for _, soil := range crop.Soils {
			if err := linkByName(ctx, tx, "crop_soils", "soil_id", "soils", cropID, soil); err != nil {
				return err
			}
			links++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return periods, links, nil
}

func (r *KnowledgeRepository) importDisease(ctx context.Context, disease model.DiseaseImport) (int, error) {
	name := strings.TrimSpace(disease.Name)
	if name == "" {
		return 0, errors.New("name is required")
	}

	var links int
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var diseaseID int64
		upsert := tx.Rebind(`
			INSERT INTO diseases (name, symptoms, treatments) VALUES (?, ?, ?)
			ON CONFLICT (name) DO UPDATE SET
				symptoms = excluded.symptoms,
				treatments = excluded.treatments
			RETURNING id
		`)
		if err := tx.GetContext(ctx, &diseaseID, upsert, name, nullString(disease.Symptoms), model.JSONArray(disease.Treatments)); err != nil {
			return fmt.Errorf("failed to upsert disease: %w", err)
		}

		for _, crop := range disease.Crops {
			if err := linkCropByName(ctx, tx, "crop_diseases", "disease_id", diseaseID, crop); err != nil {
				return err
			}
			links++
		}
		return nil
	})
	return links, err
}

func (r *KnowledgeRepository) importPest(ctx context.Context, pest model.PestImport) (int, error) {
	name := strings.TrimSpace(pest.Name)
	if name == "" {
		return 0, errors.New("name is required")
	}

	var links int
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var pestID int64
		upsert := tx.Rebind(`
			INSERT INTO pests (name, damage, controls) VALUES (?, ?, ?)
			ON CONFLICT (name) DO UPDATE SET
				damage = excluded.damage,
				controls = excluded.controls
			RETURNING id
		`)
		if err := tx.GetContext(ctx, &pestID, upsert, name, nullString(pest.Damage), model.JSONArray(pest.Controls)); err != nil {
			return fmt.Errorf("failed to upsert pest: %w", err)
		}

		for _, crop := range pest.Crops {
			if err := linkCropByName(ctx, tx, "crop_pests", "pest_id", pestID, crop); err != nil {
				return err
			}
			links++
		}
		return nil
	})
	return links, err
}

func (r *KnowledgeRepository) importFertilizer(ctx context.Context, fertilizer model.FertilizerImport) (int, error) {
	name := strings.TrimSpace(fertilizer.Name)
	kind := strings.TrimSpace(fertilizer.Type)
	if name == "" {
		return 0, errors.New("name is required")
	}
	if kind == "" {
		return 0, errors.New("type is required")
	}

	var links int
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var fertilizerID int64
		upsert := tx.Rebind(`
			INSERT INTO fertilizers (name, fertilizer_type, composition, description, application_mode, precautions)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (name, fertilizer_type) DO UPDATE SET
				composition = excluded.composition,
				description = excluded.description,
				application_mode = excluded.application_mode,
				precautions = excluded.precautions
			RETURNING id
		`)
		err := tx.GetContext(ctx, &fertilizerID, upsert,
			name,
			kind,
			nullString(fertilizer.Composition),
			nullString(fertilizer.Description),
			nullString(fertilizer.ApplicationMode),
			nullString(fertilizer.Precautions),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert fertilizer: %w", err)
		}

		link := tx.Rebind(`
			INSERT INTO crop_fertilizers (crop_id, fertilizer_id, stage, dose, frequency, method)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (crop_id, fertilizer_id) DO UPDATE SET
				stage = excluded.stage,
				dose = excluded.dose,
				frequency = excluded.frequency,
				method = excluded.method
		`)
		for _, use := range fertilizer.Uses {
			cropID, err := cropIDByName(ctx, tx, use.Crop)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, link, cropID, fertilizerID,
				nullString(use.Stage), nullString(use.Dose), nullString(use.Frequency), nullString(use.Method))
			if err != nil {
				return fmt.Errorf("failed to link crop %q: %w", use.Crop, err)
			}
			links++
		}
		return nil
	})
	return links, err
}

func (r *KnowledgeRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// linkByName links cropID to the row of table named name through linkTable
func linkByName(ctx context.Context, tx *sqlx.Tx, linkTable, column, table string, cropID int64, name string) error {
	var id int64
	lookup := tx.Rebind(fmt.Sprintf(`SELECT id FROM %s WHERE LOWER(name) = LOWER(?)`, table))
	if err := tx.GetContext(ctx, &id, lookup, strings.TrimSpace(name)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("unknown %s %q", strings.TrimSuffix(table, "s"), name)
		}
		return fmt.Errorf("failed to look up %q: %w", name, err)
	}

	insert := tx.Rebind(fmt.Sprintf(
		`INSERT INTO %s (crop_id, %s) VALUES (?, ?) ON CONFLICT DO NOTHING`, linkTable, column))
	if _, err := tx.ExecContext(ctx, insert, cropID, id); err != nil {
		return fmt.Errorf("failed to link %q: %w", name, err)
	}
	return nil
}

// linkCropByName links the crop named cropName to otherID through linkTable
func linkCropByName(ctx context.Context, tx *sqlx.Tx, linkTable, column string, otherID int64, cropName string) error {
	cropID, err := cropIDByName(ctx, tx, cropName)
	if err != nil {
		return err
	}

	insert := tx.Rebind(fmt.Sprintf(
		`INSERT INTO %s (crop_id, %s) VALUES (?, ?) ON CONFLICT DO NOTHING`, linkTable, column))
	if _, err := tx.ExecContext(ctx, insert, cropID, otherID); err != nil {
		return fmt.Errorf("failed to link crop %q: %w", cropName, err)
	}
	return nil
}

func cropIDByName(ctx context.Context, tx *sqlx.Tx, cropName string) (int64, error) {
	var cropID int64
	lookup := tx.Rebind(`SELECT id FROM crops WHERE LOWER(name) = LOWER(?)`)
	if err := tx.GetContext(ctx, &cropID, lookup, strings.TrimSpace(cropName)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("unknown crop %q", cropName)
		}
		return 0, fmt.Errorf("failed to look up crop %q: %w", cropName, err)
	}
	return cropID, nil
}

func failed(errs *multierror.Error) int {
	if errs == nil {
		return 0
	}
	return len(errs.Errors)
}

func validMonth(m int) bool {
	return m >= 1 && m <= 12
}

func nullString(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
