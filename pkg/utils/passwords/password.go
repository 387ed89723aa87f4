// Package passwords hashes and checks the admin password with argon2id.
package passwords

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
)

const (
	MinLength = 8
	MaxLength = 512

	prefix = "$argon2id$"
)

var (
	ErrNotArgonEncoded = errors.New("password hash is not argon2id encoded")

	params = &argon2id.Params{
		Memory:      128 * 1024,
		Iterations:  4,
		Parallelism: uint8(4),
		SaltLength:  32,
		KeyLength:   64,
	}

	validate = validator.New()
)

// Hash is an argon2id hash in PHC string form, as stored in
// ADMIN_PASSWORD_HASH.
type Hash string

type plaintext struct {
	Password string `validate:"required,min=8,max=512"`
}

// New hashes password. Passwords shorter than MinLength or longer than
// MaxLength are rejected.
func New(password string) (Hash, error) {
	if err := validate.Struct(plaintext{Password: password}); err != nil {
		return "", fmt.Errorf("password must be %d to %d characters: %w", MinLength, MaxLength, err)
	}
	encoded, err := argon2id.CreateHash(password, params)
	if err != nil {
		return "", err
	}
	return Hash(encoded), nil
}

// Parse checks that encoded is a well-formed argon2id hash.
func Parse(encoded string) (Hash, error) {
	encoded = strings.TrimSpace(encoded)
	if !IsArgonEncoded(encoded) {
		return "", ErrNotArgonEncoded
	}
	if _, _, _, err := argon2id.DecodeHash(encoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotArgonEncoded, err)
	}
	return Hash(encoded), nil
}

// Matches reports whether password hashes to h.
func (h Hash) Matches(password string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, string(h))
}

// Params returns the cost parameters the hash was created with.
func (h Hash) Params() (*argon2id.Params, error) {
	p, _, _, err := argon2id.DecodeHash(string(h))
	return p, err
}

func (h Hash) String() string {
	return string(h)
}

// IsArgonEncoded reports whether input carries the argon2id prefix.
func IsArgonEncoded(input string) bool {
	return strings.HasPrefix(input, prefix)
}
