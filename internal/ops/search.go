package ops

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/journal"
)

// MaxQueryLength bounds search queries in runes.
const MaxQueryLength = 500

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string
	Mood  string // optional filter
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Query string          `json:"query"`
	Items []journal.Entry `json:"items"`
	Total int             `json:"total"`
	Sort  string          `json:"sort"`
}

// Search matches the query against title, content, and tags. A blank query
// returns every entry, the same as List.
func Search(ctx context.Context, env *Env, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, errors.NewInvalidRequest("query exceeds 500 characters")
	}
	mood, err := parseMoodFilter(input.Mood)
	if err != nil {
		return nil, err
	}

	var items []journal.Entry
	if query == "" {
		items = env.Store.List(ctx)
	} else {
		items = env.Store.Search(ctx, query)
	}
	items = filterMood(items, mood)
	sortByDayDesc(items)

	return &SearchOutput{
		Query: query,
		Items: items,
		Total: len(items),
		Sort:  "day_desc",
	}, nil
}
