package credential

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Repository persists users. Insert must enforce email uniqueness atomically
// and report a collision as ErrDuplicateUser; lookups report ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// Delete removes a user. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryRepository is a mutex-guarded in-memory Repository.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]User
	byEmail map[string]uuid.UUID
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[uuid.UUID]User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) Insert(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return ErrDuplicateUser
	}
	if _, ok := r.byID[user.ID]; ok {
		return ErrDuplicateUser
	}

	user.PasswordHash = append([]byte(nil), user.PasswordHash...)
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.byID[id]; ok {
		delete(r.byEmail, user.Email)
		delete(r.byID, id)
	}
	return nil
}

// Count returns the number of stored users.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
