package backfill

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"
	"puzzlestats/internal/providers"
	"puzzlestats/internal/structures"
)

const (
	tokenLength   = 10
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var ErrBadToken = errors.New("incorrect security token")

type Gate struct {
	token string
}

// NewGate uses the configured token, or generates one and logs it once so
// the operator can pick it up.
func NewGate(conf *structures.Config, logger providers.Logger) (*Gate, error) {
	token := conf.Backfill.Token
	if token == "" {
		generated, err := GenerateToken()
		if err != nil {
			return nil, err
		}
		token = generated
		logger.Warnf(providers.TypeBackfill, "No backfill token configured, generated: %s", token)
	}
	return &Gate{token: token}, nil
}

func (g *Gate) Check(given string) error {
	if subtle.ConstantTimeCompare([]byte(given), []byte(g.token)) != 1 {
		return ErrBadToken
	}
	return nil
}

func GenerateToken() (string, error) {
	limit := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, tokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// NewGateWithToken is for callers that are already trusted, like the CLI.
func NewGateWithToken(token string) *Gate {
	return &Gate{token: token}
}
