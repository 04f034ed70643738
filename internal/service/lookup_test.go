package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agribot/internal/model"
)

func TestFormatSoilAdvice(t *testing.T) {
	got := FormatSoilAdvice(&model.SoilRecord{
		Name:          "sablonneux",
		Description:   strPtr("Sols légers, retiennent peu l'eau."),
		SuitableCrops: []string{"Mil", "Oignon"},
	})
	assert.Equal(t, "🌱 **Sol sablonneux**\n\nSols légers, retiennent peu l'eau.\n\n✅ Cultures adaptées : Mil, Oignon.", got)

	got = FormatSoilAdvice(&model.SoilRecord{Name: "latéritique"})
	assert.Equal(t, "🌱 **Sol latéritique**\n\n\n\n✅ Cultures adaptées : plusieurs cultures adaptées.", got)
}

func TestKnowledgeLookup_GetPlantingPeriods(t *testing.T) {
	store := sampleStore()
	store.periods["Mil"] = []model.PeriodRecord{
		{Region: "Nord", MonthStart: 6, MonthEnd: 7},
		{Region: "Bad", MonthStart: 0, MonthEnd: 7},
		{Region: "Worse", MonthStart: 6, MonthEnd: 13},
		{Region: "Sud", MonthStart: 5, MonthEnd: 6},
	}
	lookup := NewKnowledgeLookup(store, time.Second, zap.NewNop())

	periods, err := lookup.GetPlantingPeriods(context.Background(), "Mil")
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "Nord", periods[0].Region)
	assert.Equal(t, "Sud", periods[1].Region)

	periods, err = lookup.GetPlantingPeriods(context.Background(), "Coton")
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestKnowledgeLookup_GetSoilAdvice(t *testing.T) {
	lookup := NewKnowledgeLookup(sampleStore(), time.Second, zap.NewNop())

	advice, err := lookup.GetSoilAdvice(context.Background(), "mon sol est sablonneux")
	require.NoError(t, err)
	assert.Contains(t, advice, "Cultures adaptées : Mil, Oignon.")

	advice, err = lookup.GetSoilAdvice(context.Background(), "sol inconnu")
	require.NoError(t, err)
	assert.Empty(t, advice)
}

func TestKnowledgeLookup_Deadline(t *testing.T) {
	store := sampleStore()

	_, err := NewKnowledgeLookup(store, time.Second, zap.NewNop()).FindCropMention(context.Background(), "mil")
	require.NoError(t, err)
	assert.True(t, store.sawDeadline)

	_, err = NewKnowledgeLookup(store, 0, zap.NewNop()).FindCropMention(context.Background(), "mil")
	require.NoError(t, err)
	assert.False(t, store.sawDeadline)
}

func TestKnowledgeLookup_WrapsErrors(t *testing.T) {
	store := sampleStore()
	store.err = errors.New("disk I/O error")
	lookup := NewKnowledgeLookup(store, time.Second, zap.NewNop())

	_, err := lookup.FindCropMention(context.Background(), "mil")
	assert.ErrorIs(t, err, store.err)

	_, err = lookup.GetPlantingPeriods(context.Background(), "Mil")
	assert.ErrorContains(t, err, "get planting periods for Mil")

	_, err = lookup.GetSoilAdvice(context.Background(), "sablonneux")
	assert.ErrorIs(t, err, store.err)
}
