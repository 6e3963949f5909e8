package card

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// TokenSource produces device tokens for login requests. The token is a
// client correlation id in 8-4-4-4-12 hex-group format, not a security
// credential, so implementations are free to use weak randomness.
type TokenSource interface {
	DeviceToken() (string, error)
}

// weakTokenSource generates UUID-shaped tokens from a non-cryptographic
// generator, matching what the mobile app sends.
type weakTokenSource struct {
	rand *rand.Rand
}

// NewWeakTokenSource returns the default device token generator.
func NewWeakTokenSource() TokenSource {
	return &weakTokenSource{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *weakTokenSource) DeviceToken() (string, error) {
	id, err := uuid.NewRandomFromReader(s.rand)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
