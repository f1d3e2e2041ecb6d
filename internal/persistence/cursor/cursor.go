// Package cursor encodes the store's resume key as an opaque token that
// survives a round trip through a text query parameter. The token carries
// no signature and no expiry: a forged value simply resumes the query
// wherever the decoded key lands.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrMalformed = errors.New("malformed cursor")

// Key is the last-seen primary key of a list query.
type Key struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
}

func Encode(key Key) string {
	raw, _ := json.Marshal(key)
	return base64.URLEncoding.EncodeToString(raw)
}

func Decode(token string) (Key, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var key Key
	if err := json.Unmarshal(raw, &key); err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return key, nil
}
