package eventservice

import (
	"crypto/rand"
	"fmt"

	eventdomain "github.com/open-mic-club/encore/app/modules/event/domain"
)

// joinCodeCharset excludes nothing: codes are case-normalized on lookup, so
// the full A-Z0-9 space keeps collisions rare at six characters.
const joinCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateJoinCode returns a random six-character share code.
func generateJoinCode() (string, error) {
	buf := make([]byte, eventdomain.JoinCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	for i := range buf {
		buf[i] = joinCodeCharset[int(buf[i])%len(joinCodeCharset)]
	}
	return string(buf), nil
}
