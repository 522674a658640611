// Package pagetoken signs snapshot ids into opaque URL tokens so a browser
// can only open snapshots the service handed out.
package pagetoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/securecookie"
)

const tokenName = "kcpage"

// MinKeyLen is the shortest accepted hash key.
const MinKeyLen = 32

// ErrInvalid is returned for tokens that fail verification or have expired.
var ErrInvalid = errors.New("pagetoken: invalid or expired token")

// Codec encodes and decodes page tokens.
type Codec struct {
	sc *securecookie.SecureCookie
}

// New builds a Codec from a hash key (at least 32 bytes). Tokens older than
// maxAge are rejected.
func New(hashKey []byte, maxAge time.Duration) (*Codec, error) {
	if len(hashKey) < MinKeyLen {
		return nil, fmt.Errorf("pagetoken: hash key must be at least %d bytes, got %d", MinKeyLen, len(hashKey))
	}
	sc := securecookie.New(hashKey, nil)
	sc.MaxAge(int(maxAge.Seconds()))
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &Codec{sc: sc}, nil
}

// Encode returns the URL-safe token for id.
func (c *Codec) Encode(id string) (string, error) {
	tok, err := c.sc.Encode(tokenName, id)
	if err != nil {
		return "", fmt.Errorf("encode page token: %w", err)
	}
	return tok, nil
}

// Decode verifies token and returns the snapshot id it carries.
func (c *Codec) Decode(token string) (string, error) {
	var id string
	if err := c.sc.Decode(tokenName, token, &id); err != nil {
		return "", ErrInvalid
	}
	if id == "" {
		return "", ErrInvalid
	}
	return id, nil
}
