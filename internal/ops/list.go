package ops

import (
	"context"

	"github.com/hpungsan/selah/internal/journal"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Mood string // optional filter
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []journal.Entry `json:"items"`
	Total int             `json:"total"`
	Sort  string          `json:"sort"`
}

// List returns all entries, highest day first.
func List(ctx context.Context, env *Env, input ListInput) (*ListOutput, error) {
	mood, err := parseMoodFilter(input.Mood)
	if err != nil {
		return nil, err
	}

	items := filterMood(env.Store.List(ctx), mood)
	sortByDayDesc(items)

	return &ListOutput{
		Items: items,
		Total: len(items),
		Sort:  "day_desc",
	}, nil
}
