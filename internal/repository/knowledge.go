package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"agribot/internal/config"
	"agribot/internal/model"

	"github.com/avast/retry-go/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Supported store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// KnowledgeRepository handles knowledge base operations
type KnowledgeRepository struct {
	db     *sqlx.DB
	driver string
	logger *zap.Logger
}

// NewKnowledgeRepository connects to the knowledge store and creates the schema
func NewKnowledgeRepository(ctx context.Context, cfg config.StoreConfig, dsn string, logger *zap.Logger) (*KnowledgeRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Driver == DriverSQLite && cfg.SQLitePath != "" {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
	}

	attempts := uint(1)
	if cfg.ConnectAttempts > 1 {
		attempts = uint(cfg.ConnectAttempts)
	}

	var db *sqlx.DB
	err := retry.Do(
		func() error {
			conn, err := sqlx.ConnectContext(ctx, cfg.Driver, dsn)
			if err != nil {
				return err
			}
			db = conn
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("knowledge store not reachable, retrying",
				zap.String("driver", cfg.Driver),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to knowledge store: %w", err)
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	repo := &KnowledgeRepository{db: db, driver: cfg.Driver, logger: logger}
	if err := repo.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the database connection
func (r *KnowledgeRepository) Close() error {
	return r.db.Close()
}

// Ping checks that the store still answers
func (r *KnowledgeRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *KnowledgeRepository) migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaFor(r.driver), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

const cropColumns = `id, name, crop_type, cycle_days, description, soil_types, tips`

// ListCrops returns every registered crop in registration order
func (r *KnowledgeRepository) ListCrops(ctx context.Context) ([]model.Crop, error) {
	var crops []model.Crop
	query := `SELECT ` + cropColumns + ` FROM crops ORDER BY id`
	if err := r.db.SelectContext(ctx, &crops, query); err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	return crops, nil
}

// FindCropMention returns the first registered crop whose name appears in text
func (r *KnowledgeRepository) FindCropMention(ctx context.Context, text string) (*model.Crop, error) {
	crops, err := r.ListCrops(ctx)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(text)
	for i := range crops {
		if strings.Contains(lowered, strings.ToLower(crops[i].Name)) {
			return &crops[i], nil
		}
	}
	return nil, nil
}

// GetCropByName retrieves a crop by case-insensitive name.
// SQLite's LOWER only folds ASCII, so accented names are compared in Go.
func (r *KnowledgeRepository) GetCropByName(ctx context.Context, name string) (*model.Crop, error) {
	var crop model.Crop
	query := r.db.Rebind(`SELECT ` + cropColumns + ` FROM crops WHERE name = ?`)
	err := r.db.GetContext(ctx, &crop, query, strings.TrimSpace(name))
	if err == nil {
		return &crop, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get crop: %w", err)
	}

	crops, err := r.ListCrops(ctx)
	if err != nil {
		return nil, err
	}
	for i := range crops {
		if strings.EqualFold(crops[i].Name, strings.TrimSpace(name)) {
			return &crops[i], nil
		}
	}
	return nil, nil
}

// GetPlantingPeriods returns the planting windows of a crop ordered by region
func (r *KnowledgeRepository) GetPlantingPeriods(ctx context.Context, cropName string) ([]model.PeriodRecord, error) {
	query := r.db.Rebind(`
		SELECT p.region, p.month_start, p.month_end, p.advice, c.cycle_days
		FROM planting_periods p
		JOIN crops c ON c.id = p.crop_id
		WHERE LOWER(c.name) = LOWER(?)
		ORDER BY p.region, p.id
	`)

	var periods []model.PeriodRecord
	if err := r.db.SelectContext(ctx, &periods, query, cropName); err != nil {
		return nil, fmt.Errorf("failed to get planting periods: %w", err)
	}
	return periods, nil
}

// SoilNames returns the registered soil names in registration order
func (r *KnowledgeRepository) SoilNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.SelectContext(ctx, &names, `SELECT name FROM soils ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list soil names: %w", err)
	}
	return names, nil
}

// FindSoilMention returns the first registered soil whose name appears in
// text, with its suitable crops ordered by name
func (r *KnowledgeRepository) FindSoilMention(ctx context.Context, text string) (*model.SoilRecord, error) {
	var soils []model.SoilRecord
	if err := r.db.SelectContext(ctx, &soils, `SELECT id, name, description FROM soils ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list soils: %w", err)
	}

	lowered := strings.ToLower(text)
	for i := range soils {
		if !strings.Contains(lowered, strings.ToLower(soils[i].Name)) {
			continue
		}
		crops, err := r.suitableCrops(ctx, soils[i].ID)
		if err != nil {
			return nil, err
		}
		soils[i].SuitableCrops = crops
		return &soils[i], nil
	}
	return nil, nil
}

// ListSoils returns every soil with its suitable crops
func (r *KnowledgeRepository) ListSoils(ctx context.Context) ([]model.SoilRecord, error) {
	var soils []model.SoilRecord
	if err := r.db.SelectContext(ctx, &soils, `SELECT id, name, description FROM soils ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list soils: %w", err)
	}

	for i := range soils {
		crops, err := r.suitableCrops(ctx, soils[i].ID)
		if err != nil {
			return nil, err
		}
		soils[i].SuitableCrops = crops
	}
	return soils, nil
}

func (r *KnowledgeRepository) suitableCrops(ctx context.Context, soilID int64) ([]string, error) {
	query := r.db.Rebind(`
		SELECT c.name
		FROM crops c
		JOIN crop_soils cs ON cs.crop_id = c.id
		WHERE cs.soil_id = ?
		ORDER BY c.name
	`)

	crops := []string{}
	if err := r.db.SelectContext(ctx, &crops, query, soilID); err != nil {
		return nil, fmt.Errorf("failed to get suitable crops: %w", err)
	}
	return crops, nil
}

// GetCropProfile retrieves a crop with its periods, soils, diseases, pests
// and recommended fertilizers.
// Returns nil when the crop is unknown.
func (r *KnowledgeRepository) GetCropProfile(ctx context.Context, name string) (*model.CropProfile, error) {
	crop, err := r.GetCropByName(ctx, name)
	if err != nil || crop == nil {
		return nil, err
	}
	r.logger.Debug("building crop profile", zap.String("crop", crop.Name))

	profile := &model.CropProfile{
		Crop:        *crop,
		Periods:     []model.PeriodRecord{},
		Soils:       []string{},
		Diseases:    []model.Disease{},
		Pests:       []model.Pest{},
		Fertilizers: []model.CropFertilizer{},
	}

	if profile.Periods, err = r.GetPlantingPeriods(ctx, crop.Name); err != nil {
		return nil, err
	}
	if profile.Periods == nil {
		profile.Periods = []model.PeriodRecord{}
	}

	soilQuery := r.db.Rebind(`
		SELECT s.name FROM soils s
		JOIN crop_soils cs ON cs.soil_id = s.id
		WHERE cs.crop_id = ?
		ORDER BY s.name
	`)
	if err := r.db.SelectContext(ctx, &profile.Soils, soilQuery, crop.ID); err != nil {
		return nil, fmt.Errorf("failed to get crop soils: %w", err)
	}

	diseaseQuery := r.db.Rebind(`
		SELECT d.id, d.name, d.symptoms, d.treatments FROM diseases d
		JOIN crop_diseases cd ON cd.disease_id = d.id
		WHERE cd.crop_id = ?
		ORDER BY d.name
	`)
	if err := r.db.SelectContext(ctx, &profile.Diseases, diseaseQuery, crop.ID); err != nil {
		return nil, fmt.Errorf("failed to get crop diseases: %w", err)
	}

	pestQuery := r.db.Rebind(`
		SELECT p.id, p.name, p.damage, p.controls FROM pests p
		JOIN crop_pests cp ON cp.pest_id = p.id
		WHERE cp.crop_id = ?
		ORDER BY p.name
	`)
	if err := r.db.SelectContext(ctx, &profile.Pests, pestQuery, crop.ID); err != nil {
		return nil, fmt.Errorf("failed to get crop pests: %w", err)
	}

	fertilizerQuery := r.db.Rebind(`
		SELECT f.id, f.name, f.fertilizer_type, f.composition, f.description,
		       f.application_mode, f.precautions,
		       cf.stage, cf.dose, cf.frequency, cf.method
		FROM fertilizers f
		JOIN crop_fertilizers cf ON cf.fertilizer_id = f.id
		WHERE cf.crop_id = ?
		ORDER BY COALESCE(cf.stage, ''), f.name
	`)
	if err := r.db.SelectContext(ctx, &profile.Fertilizers, fertilizerQuery, crop.ID); err != nil {
		return nil, fmt.Errorf("failed to get crop fertilizers: %w", err)
	}

	return profile, nil
}

// CountCrops returns the number of registered crops
func (r *KnowledgeRepository) CountCrops(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM crops`); err != nil {
		return 0, fmt.Errorf("failed to count crops: %w", err)
	}
	return total, nil
}
