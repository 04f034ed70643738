package conversation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agribot/internal/model"
)

func turn(text string, confidence float64, source string) model.Turn {
	return model.Turn{
		UserText:   text,
		BotText:    "réponse à " + text,
		Confidence: confidence,
		Source:     source,
		Timestamp:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStore_AppendAllClear(t *testing.T) {
	s := NewMemoryStore()
	assert.Empty(t, s.All())
	assert.Nil(t, Last(s))

	first := turn("bonjour", 0.95, "greeting")
	second := turn("quand planter le maïs", 0.96, "knowledge-store (crops)")
	s.Append(first)
	s.Append(second)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0])
	assert.Equal(t, second, all[len(all)-1])
	assert.Equal(t, &second, Last(s))

	// duplicates are kept
	s.Append(second)
	assert.Equal(t, 3, s.Len())

	s.Clear()
	assert.Empty(t, s.All())
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_AllReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.Append(turn("a", 0.5, "system"))

	all := s.All()
	all[0].BotText = "modifié"

	assert.Equal(t, "réponse à a", s.All()[0].BotText)
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append(turn(fmt.Sprintf("message %d", i), 0.5, "system"))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}

func TestDerivedViews(t *testing.T) {
	assert.Equal(t, 0.0, AverageConfidence(nil))
	assert.Empty(t, SourceCounts(nil))

	turns := []model.Turn{
		turn("bonjour", 0.95, "greeting"),
		turn("???", 0.50, "system"),
		turn("salut", 0.95, "greeting"),
		turn("maladie", 0.92, "agricultural database"),
	}

	assert.InDelta(t, 0.83, AverageConfidence(turns), 1e-9)
	assert.Equal(t, map[string]int{
		"greeting":              2,
		"system":                1,
		"agricultural database": 1,
	}, SourceCounts(turns))
}

func TestRegistry_IndependentSessions(t *testing.T) {
	r := NewRegistry(0)

	r.Get("a").Append(turn("bonjour", 0.95, "greeting"))
	r.Get("b").Append(turn("salut", 0.95, "greeting"))
	r.Get("b").Append(turn("merci", 0.5, "system"))

	assert.Equal(t, 1, r.Get("a").Len())
	assert.Equal(t, 2, r.Get("b").Len())
	assert.Equal(t, 2, r.Len())

	_, ok := r.Peek("missing")
	assert.False(t, ok)

	r.Delete("a")
	_, ok = r.Peek("a")
	assert.False(t, ok)
}

func TestRegistry_ExpiresIdleSessions(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Hour)
	r.now = func() time.Time { return now }

	r.Get("old").Append(turn("bonjour", 0.95, "greeting"))

	now = now.Add(30 * time.Minute)
	r.Get("fresh")

	now = now.Add(45 * time.Minute)
	_, ok := r.Peek("old")
	assert.False(t, ok, "old session should have expired")

	store, ok := r.Peek("fresh")
	require.True(t, ok)
	assert.Equal(t, 0, store.Len())

	// a new log starts empty after expiry
	assert.Equal(t, 0, r.Get("old").Len())
}
