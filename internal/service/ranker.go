package service

import (
	"sort"

	"agribot/internal/model"
	"agribot/internal/utils"
)

// CategoryScore is the keyword score of one static category block
type CategoryScore struct {
	Block   model.CategoryBlock `json:"block"`
	Hits    int                 `json:"hits"`
	Matched []string            `json:"matched"`
}

// CategoryRanker scores the static category blocks by keyword hits
type CategoryRanker struct {
	categories []model.CategoryBlock
}

// NewCategoryRanker creates a ranker over categories, in their declared order
func NewCategoryRanker(categories []model.CategoryBlock) *CategoryRanker {
	return &CategoryRanker{categories: categories}
}

// RankCategories scores every category against lowered text and sorts them by
// hits, descending. Categories with equal hits keep their declared order.
func (r *CategoryRanker) RankCategories(lowered string) []CategoryScore {
	scores := make([]CategoryScore, 0, len(r.categories))

	for _, block := range r.categories {
		score := CategoryScore{
			Block:   block,
			Matched: utils.MatchedKeywords(lowered, block.Keywords),
		}
		score.Hits = len(score.Matched)
		scores = append(scores, score)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Hits > scores[j].Hits
	})

	return scores
}

// Best returns the category with the strictly greatest number of hits. Ties
// go to the category declared first. ok is false when nothing matched.
func (r *CategoryRanker) Best(lowered string) (model.CategoryBlock, bool) {
	scores := r.RankCategories(lowered)
	if len(scores) == 0 || scores[0].Hits == 0 {
		return model.CategoryBlock{}, false
	}
	return scores[0].Block, true
}
