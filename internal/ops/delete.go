package ops

import (
	"context"
	"fmt"

	"github.com/hpungsan/selah/internal/errors"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID  string
	Day int
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete removes an entry by id or by day. Deleting an unknown id succeeds
// with Deleted=false; deleting by a day with no entry is NOT_FOUND.
func Delete(ctx context.Context, env *Env, input DeleteInput) (*DeleteOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Day)
	if err != nil {
		return nil, err
	}

	id := addr.ID
	existed := false
	if addr.ByID {
		entries, err := env.Store.Load(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.ID == id {
				existed = true
				break
			}
		}
	} else {
		e, ok := env.Store.FindByDay(ctx, addr.Day)
		if !ok {
			return nil, errors.NewNotFound(fmt.Sprintf("day %d", addr.Day))
		}
		id = e.ID
		existed = true
	}

	if err := env.Store.Delete(ctx, id); err != nil {
		return nil, err
	}

	return &DeleteOutput{Deleted: existed, ID: id}, nil
}
