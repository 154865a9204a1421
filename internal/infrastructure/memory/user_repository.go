package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	users   map[uint]*user.User
	byEmail map[string]uint
	nextID  uint
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[uint]*user.User),
		byEmail: make(map[string]uint),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return user.ErrEmailTaken
	}
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	} else if u.ID > r.nextID {
		r.nextID = u.ID
	}
	r.users[u.ID] = cloneUser(u)
	r.byEmail[key] = u.ID
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.users)), nil
}

func cloneUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
