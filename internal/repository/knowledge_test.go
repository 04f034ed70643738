package repository

import (
	"context"
	"path/filepath"
	"testing"

	"agribot/internal/config"
	"agribot/internal/model"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) *KnowledgeRepository {
	t.Helper()

	cfg := &config.Config{Store: config.StoreConfig{
		Driver:          DriverSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "store", "agri.db"),
		ConnectAttempts: 1,
	}}
	repo, err := NewKnowledgeRepository(context.Background(), cfg.Store, cfg.GetStoreDSN(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newSeededRepository(t *testing.T) *KnowledgeRepository {
	t.Helper()

	repo := newTestRepository(t)
	seeded, err := repo.Seed(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)
	return repo
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	total, err := repo.CountCrops(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, total)

	seeded, err := repo.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	total, err = repo.CountCrops(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, total)
}

func TestFindCropMention(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"accented name", "quand planter le maïs", "Maïs"},
		{"mixed case", "Le NIÉBÉ ou le Sorgho ?", "Sorgho"},
		{"registration order wins", "mil ou riz", "Mil"},
		{"no crop", "bonjour", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crop, err := repo.FindCropMention(ctx, tt.text)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, crop)
				return
			}
			require.NotNil(t, crop)
			assert.Equal(t, tt.want, crop.Name)
		})
	}
}

func TestGetPlantingPeriods(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	periods, err := repo.GetPlantingPeriods(ctx, "maïs")
	require.NoError(t, err)
	require.Len(t, periods, 1)

	p := periods[0]
	assert.Equal(t, "Centre", p.Region)
	assert.Equal(t, 5, p.MonthStart)
	assert.Equal(t, 7, p.MonthEnd)
	require.NotNil(t, p.Advice)
	assert.Contains(t, *p.Advice, "installation des pluies")
	require.NotNil(t, p.CycleDays)
	assert.Equal(t, 90, *p.CycleDays)

	periods, err = repo.GetPlantingPeriods(ctx, "manioc")
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestFindSoilMention(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	soil, err := repo.FindSoilMention(ctx, "sol sablonneux")
	require.NoError(t, err)
	require.NotNil(t, soil)
	assert.Equal(t, "sablonneux", soil.Name)
	require.NotNil(t, soil.Description)
	assert.Contains(t, *soil.Description, "retiennent peu l'eau")
	assert.Equal(t, []string{"Mil", "Oignon"}, soil.SuitableCrops)

	soil, err = repo.FindSoilMention(ctx, "sol latéritique")
	require.NoError(t, err)
	assert.Nil(t, soil)

	names, err := repo.SoilNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sablonneux", "argilo-limoneux", "ferrugineux tropicaux"}, names)
}

func TestGetCropProfile(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	profile, err := repo.GetCropProfile(ctx, "MAÏS")
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, "Maïs", profile.Name)
	assert.Equal(t, []string{"argilo-limoneux", "ferrugineux tropicaux"}, profile.Soils)
	assert.Len(t, profile.Periods, 1)
	assert.Empty(t, profile.Diseases)
	require.Len(t, profile.Pests, 2)
	assert.Equal(t, "Chenille légionnaire d'automne", profile.Pests[0].Name)
	assert.Contains(t, []string(profile.Pests[0].Controls), "Extrait de neem")
	assert.Len(t, profile.Tips, 2)

	profile, err = repo.GetCropProfile(ctx, "manioc")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestImport_AggregatesFailures(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	bundle := &model.KnowledgeBundle{
		Crops: []model.CropImport{
			{Name: "Sésame", CycleDays: 90, Periods: []model.PeriodRecord{{Region: "Centre", MonthStart: 6, MonthEnd: 7}}},
			{Name: "Coton", Periods: []model.PeriodRecord{{Region: "Ouest", MonthStart: 0, MonthEnd: 13}}},
			{Name: "Manioc", Soils: []string{"volcanique"}},
			{Name: "  "},
		},
		Pests: []model.PestImport{
			{Name: "Criquet", Crops: []string{"Sésame"}},
		},
	}

	result, err := repo.Import(ctx, bundle)
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)
	assert.Contains(t, err.Error(), "Coton")
	assert.Contains(t, err.Error(), "volcanique")

	assert.Equal(t, 1, result.Crops)
	assert.Equal(t, 1, result.Periods)
	assert.Equal(t, 1, result.Pests)

	periods, err := repo.GetPlantingPeriods(ctx, "sésame")
	require.NoError(t, err)
	assert.Len(t, periods, 1)

	// a failed crop leaves nothing behind
	crop, err := repo.GetCropByName(ctx, "Manioc")
	require.NoError(t, err)
	assert.Nil(t, crop)
}

func TestImport_ReplacesPeriods(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	bundle := &model.KnowledgeBundle{Crops: []model.CropImport{{
		Name:      "Maïs",
		CycleDays: 95,
		Periods: []model.PeriodRecord{
			{Region: "Ouest", MonthStart: 5, MonthEnd: 6},
			{Region: "Centre", MonthStart: 6, MonthEnd: 7},
		},
	}}}

	_, err := repo.Import(ctx, bundle)
	require.NoError(t, err)

	periods, err := repo.GetPlantingPeriods(ctx, "Maïs")
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "Centre", periods[0].Region)
	assert.Equal(t, "Ouest", periods[1].Region)
	require.NotNil(t, periods[0].CycleDays)
	assert.Equal(t, 95, *periods[0].CycleDays)

	total, err := repo.CountCrops(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, total)
}

func TestMalformedListColumn_DecodesEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	_, err := repo.db.ExecContext(ctx, `UPDATE crops SET tips = '[unterminated' WHERE name = 'Tomate'`)
	require.NoError(t, err)

	crop, err := repo.GetCropByName(ctx, "tomate")
	require.NoError(t, err)
	require.NotNil(t, crop)
	assert.NotNil(t, crop.Tips)
	assert.Empty(t, crop.Tips)
}

func TestGetCropProfile_Fertilizers(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	profile, err := repo.GetCropProfile(ctx, "maïs")
	require.NoError(t, err)
	require.NotNil(t, profile)

	require.Len(t, profile.Fertilizers, 3)
	assert.Equal(t, "Compost", profile.Fertilizers[0].Name)
	assert.Equal(t, "Organique", profile.Fertilizers[0].Type)
	assert.Nil(t, profile.Fertilizers[0].Composition)
	assert.Equal(t, "Urée 46%", profile.Fertilizers[1].Name)
	assert.Equal(t, "NPK 15-15-15", profile.Fertilizers[2].Name)
	require.NotNil(t, profile.Fertilizers[2].Dose)
	assert.Equal(t, "200 kg/ha", *profile.Fertilizers[2].Dose)

	profile, err = repo.GetCropProfile(ctx, "Sorgho")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.NotNil(t, profile.Fertilizers)
	assert.Empty(t, profile.Fertilizers)
}

func TestImport_FertilizerUpsert(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	bundle := &model.KnowledgeBundle{Fertilizers: []model.FertilizerImport{
		{
			Name: "NPK 15-15-15",
			Type: "Minéral",
			Uses: []model.FertilizerUse{{Crop: "Maïs", Stage: "Semis", Dose: "150 kg/ha"}},
		},
		{Name: "NPK 15-15-15", Type: "Organique"},
		{Name: "Fumier", Type: "Organique", Uses: []model.FertilizerUse{{Crop: "Manioc"}}},
		{Name: "Cendre"},
	}}

	result, err := repo.Import(ctx, bundle)
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), "Manioc")
	assert.Equal(t, 2, result.Fertilizers)
	assert.Equal(t, 1, result.Links)

	profile, err := repo.GetCropProfile(ctx, "Maïs")
	require.NoError(t, err)
	require.Len(t, profile.Fertilizers, 3)

	npk := profile.Fertilizers[2]
	assert.Equal(t, "NPK 15-15-15", npk.Name)
	require.NotNil(t, npk.Dose)
	assert.Equal(t, "150 kg/ha", *npk.Dose)
	assert.Nil(t, npk.Description)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	repo := newSeededRepository(t)

	tests := []struct {
		name     string
		keyword  string
		limit    int
		crops    []string
		diseases []string
		pests    []string
	}{
		{"crop type", "céréale", 0, []string{"Maïs", "Mil", "Riz", "Sorgho"}, nil, nil},
		{"limited per category", "CÉRÉALE", 2, []string{"Maïs", "Mil"}, nil, nil},
		{"symptoms and damage", "feuilles", 0, nil,
			[]string{"Mildiou", "Pyriculariose"},
			[]string{"Chenille légionnaire d'automne", "Pucerons", "Thrips"}},
		{"name", "thrips", 0, nil, nil, []string{"Thrips"}},
		{"wildcards are literal", "%", 0, nil, nil, nil},
		{"blank keyword", "   ", 0, nil, nil, nil},
	}

	names := func(hits []model.SearchHit) []string {
		out := []string{}
		for _, h := range hits {
			out = append(out, h.Name)
		}
		return out
	}
	orEmpty := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := repo.Search(ctx, tt.keyword, tt.limit)
			require.NoError(t, err)
			require.NotNil(t, results)
			assert.Equal(t, orEmpty(tt.crops), names(results.Crops))
			assert.Equal(t, orEmpty(tt.diseases), names(results.Diseases))
			assert.Equal(t, orEmpty(tt.pests), names(results.Pests))
		})
	}

	results, err := repo.Search(ctx, "riz", 0)
	require.NoError(t, err)
	require.Len(t, results.Crops, 1)
	require.NotNil(t, results.Crops[0].Kind)
	assert.Equal(t, "céréale", *results.Crops[0].Kind)
	require.NotNil(t, results.Crops[0].Description)
	assert.Contains(t, *results.Crops[0].Description, "bas-fond")
}

func TestExport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	source := newSeededRepository(t)

	bundle, err := source.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, bundle.Crops, 8)
	assert.Len(t, bundle.Soils, 3)
	assert.Len(t, bundle.Diseases, 4)
	assert.Len(t, bundle.Pests, 4)
	require.Len(t, bundle.Fertilizers, 3)
	assert.Equal(t, []string{"Maïs", "Sorgho"}, bundle.Pests[0].Crops)
	assert.Equal(t, "Maïs", bundle.Crops[0].Name)
	assert.Equal(t, 90, bundle.Crops[0].CycleDays)
	assert.Equal(t, []string{"argilo-limoneux", "ferrugineux tropicaux"}, bundle.Crops[0].Soils)

	target := newTestRepository(t)
	result, err := target.Import(ctx, bundle)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Crops)
	assert.Equal(t, 3, result.Fertilizers)

	again, err := target.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, bundle, again)

	profile, err := target.GetCropProfile(ctx, "Tomate")
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.Len(t, profile.Diseases, 1)
	assert.Equal(t, "Flétrissement bactérien", profile.Diseases[0].Name)
	require.Len(t, profile.Fertilizers, 1)
	assert.Equal(t, "Repiquage", *profile.Fertilizers[0].Stage)
}
