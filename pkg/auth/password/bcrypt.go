package password

import "golang.org/x/crypto/bcrypt"

const (
	// MinLength counts characters.
	MinLength = 6
	// MaxBytes is the bcrypt input limit. It counts bytes, so a Bengali
	// password reaches it at 24 characters.
	MaxBytes = 72
)

// Hasher hides the credential hashing scheme from the services.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) bool
}

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher falls back to bcrypt.DefaultCost for an out of range cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h *BcryptHasher) Compare(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
