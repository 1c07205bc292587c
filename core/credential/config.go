package credential

import "golang.org/x/crypto/bcrypt"

// Config holds password hashing settings.
type Config struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Option configures a Store.
type Option func(*Store)

// WithBcryptCost sets the bcrypt work factor. Out-of-range values fall back
// to bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *Store) {
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			cost = bcrypt.DefaultCost
		}
		s.cost = cost
	}
}
