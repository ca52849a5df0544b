package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func usernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := usernameKey(u.Username)
	if _, taken := r.store.usernameIdx[key]; taken {
		return user.ErrUsernameTaken
	}
	r.store.users[u.ID] = u
	r.store.usernameIdx[key] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[userID]
	return u, ok, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.usernameIdx[usernameKey(username)]
	if !ok {
		return user.User{}, false, nil
	}
	u, ok := r.store.users[id]
	return u, ok, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]user.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b user.User) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}
