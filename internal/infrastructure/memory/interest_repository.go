package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/interest"
)

type interestKey struct {
	userID    uint
	productID uint
}

type InterestRepository struct {
	mu     sync.RWMutex
	scores map[interestKey]*interest.Interest
	nextID uint
}

func NewInterestRepository() *InterestRepository {
	return &InterestRepository{scores: make(map[interestKey]*interest.Interest)}
}

func (r *InterestRepository) Bump(ctx context.Context, userID, productID uint, delta int) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	key := interestKey{userID, productID}
	entry, ok := r.scores[key]
	if !ok {
		r.nextID++
		entry = &interest.Interest{ID: r.nextID, UserID: userID, ProductID: productID}
		r.scores[key] = entry
	}
	entry.Score += delta
	entry.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InterestRepository) ListByUser(ctx context.Context, userID uint) ([]*interest.Interest, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*interest.Interest, 0)
	for key, entry := range r.scores {
		if key.userID == userID {
			clone := *entry
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
