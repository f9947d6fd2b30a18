package tokens

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

// New returns an unguessable URL-safe token (32 random bytes). Used for the
// emailed confirm/cancel links, so it must survive being pasted into a URL.
func New() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Match compares a presented token against a stored one in constant time.
func Match(presented, stored string) bool {
	if presented == "" || stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(stored)) == 1
}
