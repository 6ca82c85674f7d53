package item

import (
	"context"

	"github.com/shareit-go/shareit/internal/itemrequest"
)

type requestItems struct {
	repo Repository
}

// NewRequestItems exposes items to the item request engine.
func NewRequestItems(repo Repository) itemrequest.ItemFinder {
	return &requestItems{repo: repo}
}

func (r *requestItems) ByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]itemrequest.ItemBrief, error) {
	items, err := r.repo.ListByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[int64][]itemrequest.ItemBrief, len(requestIDs))
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		out[*it.RequestID] = append(out[*it.RequestID], itemrequest.ItemBrief{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			OwnerID:     it.OwnerID,
			RequestID:   *it.RequestID,
		})
	}
	return out, nil
}
