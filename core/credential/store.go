package credential

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

// Store hashes and verifies passwords over a Repository.
type Store struct {
	repo Repository
	cost int
	now  func() time.Time

	// dummyHash has the configured cost and is compared against for
	// unknown users.
	dummyHash []byte
}

// NewStore creates a credential store.
func NewStore(repo Repository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		cost: bcrypt.DefaultCost,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
	if err != nil {
		// Only an out-of-range cost fails, and WithBcryptCost clamps it.
		panic(err)
	}
	s.dummyHash = hash
	return s
}

// NormalizeEmail trims surrounding whitespace. Case is preserved.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// Create registers a user and returns its id. Uniqueness is decided by the
// repository insert, so concurrent registrations of one email yield exactly
// one user and ErrDuplicateUser for the rest.
func (s *Store) Create(ctx context.Context, email, password string) (uuid.UUID, error) {
	if len(password) > maxPasswordBytes {
		return uuid.Nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return uuid.Nil, errors.Join(ErrHashPassword, err)
	}

	user := User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// FindByEmail looks a user up by trimmed email.
func (s *Store) FindByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

// FindByID looks a user up by id.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes the user with id.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// VerifyPassword reports whether password matches the user's hash.
// A nil user is checked against a dummy hash of the same cost, so callers can
// spend equal time on unknown emails and wrong passwords.
func (s *Store) VerifyPassword(user *User, password string) bool {
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) == nil
}
