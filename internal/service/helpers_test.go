package service

import (
	"context"
	"strings"

	"agribot/internal/model"
)

// fakeStore is an in-memory KnowledgeStore
type fakeStore struct {
	crops   []model.Crop
	periods map[string][]model.PeriodRecord
	soils   []model.SoilRecord
	err     error

	sawDeadline bool
}

func (f *fakeStore) FindCropMention(ctx context.Context, text string) (*model.Crop, error) {
	_, f.sawDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	lowered := strings.ToLower(text)
	for i := range f.crops {
		if strings.Contains(lowered, strings.ToLower(f.crops[i].Name)) {
			return &f.crops[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetPlantingPeriods(ctx context.Context, cropName string) ([]model.PeriodRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.periods[cropName], nil
}

func (f *fakeStore) FindSoilMention(ctx context.Context, text string) (*model.SoilRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	lowered := strings.ToLower(text)
	for i := range f.soils {
		if strings.Contains(lowered, f.soils[i].Name) {
			return &f.soils[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SoilNames(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	names := make([]string, 0, len(f.soils))
	for _, s := range f.soils {
		names = append(names, s.Name)
	}
	return names, nil
}

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

// sampleStore holds the maize and sandy soil facts used across tests
func sampleStore() *fakeStore {
	return &fakeStore{
		crops: []model.Crop{{ID: 1, Name: "Maïs"}, {ID: 2, Name: "Mil"}},
		periods: map[string][]model.PeriodRecord{
			"Maïs": {{Region: "Centre", MonthStart: 5, MonthEnd: 7, Advice: strPtr("sow early"), CycleDays: intPtr(90)}},
		},
		soils: []model.SoilRecord{{
			ID:            1,
			Name:          "sablonneux",
			Description:   strPtr("Sols légers, retiennent peu l'eau."),
			SuitableCrops: []string{"Mil", "Oignon"},
		}},
	}
}
