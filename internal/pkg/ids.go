package pkg

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

const (
	gameIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	gameIDLength   = 6
)

// GenerateNewSessionID - unique ID for a browser session.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// GenerateGameID - short shareable game code. Ambiguous characters are left
// out of the alphabet.
func GenerateGameID() string {
	alphabetSize := big.NewInt(int64(len(gameIDAlphabet)))

	code := make([]byte, gameIDLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// crypto/rand failing means the platform is broken; fall back to
			// a UUID-derived code rather than return an error nobody handles.
			return uuid.NewString()[:gameIDLength]
		}
		code[i] = gameIDAlphabet[n.Int64()]
	}

	return string(code)
}
