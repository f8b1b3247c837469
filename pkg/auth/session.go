package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

const sessionCookieName = "solidaire_session"
const minSecretLen = 32

var errInvalidToken = errors.New("invalid session token")

func sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// CreateSessionToken builds a signed session token from a user ID.
func CreateSessionToken(userID string, secret []byte) string {
	payload := []byte(userID)
	return base64.URLEncoding.EncodeToString(payload) + "." + sign(payload, secret)
}

// VerifySessionToken checks the token signature and returns the user ID.
func VerifySessionToken(token string, secret []byte) (string, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", errInvalidToken
	}
	payload, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", errInvalidToken
	}
	if !hmac.Equal([]byte(sign(payload, secret)), []byte(sig)) {
		return "", errInvalidToken
	}
	return string(payload), nil
}

// SessionCookieName returns the session cookie name.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes derives the signing secret bytes from a string,
// zero-padding to the 32-byte minimum.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
