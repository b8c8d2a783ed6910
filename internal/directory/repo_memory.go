package directory

import (
	"context"
	"sync"
)

// MemoryRepo keeps the roster in insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []string
	users map[string]User
}

func NewMemoryRepo(users ...User) *MemoryRepo {
	r := &MemoryRepo{users: make(map[string]User, len(users))}
	for _, u := range users {
		r.put(u)
	}
	return r
}

func (r *MemoryRepo) put(user User) {
	if _, ok := r.users[user.ID]; !ok {
		r.order = append(r.order, user.ID)
	}
	r.users[user.ID] = user
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}
