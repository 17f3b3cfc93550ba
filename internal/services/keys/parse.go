package keys

import (
	"encoding/json"
	"fmt"

	"github.com/sauerbraten/jsonfile"

	"auctionauth/internal/domain/types"
)

// ParseServerKey reads a public key from a key-endpoint response. Accepted
// shapes:
//
//	{"message": {"e": ..., "n": ...}}
//	{"message": "{\"e\": ..., \"n\": ...}"}
//	{"e": ..., "n": ...}
//
// with e and n as JSON numbers or decimal strings.
func ParseServerKey(body []byte) (types.KeyHalf, error) {
	var env struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return types.KeyHalf{}, fmt.Errorf("%w: server key response: %v", types.ErrInvalidKey, err)
	}

	payload := body
	if len(env.Message) > 0 {
		payload = env.Message
		var inner string
		if err := json.Unmarshal(payload, &inner); err == nil {
			payload = []byte(inner)
		}
	}

	var k types.KeyHalf
	if err := json.Unmarshal(payload, &k); err != nil {
		return types.KeyHalf{}, fmt.Errorf("server key response: %w", err)
	}
	if k.IsZero() {
		return types.KeyHalf{}, fmt.Errorf("%w: server key response has no key", types.ErrInvalidKey)
	}
	return k, nil
}

// LoadPinnedKey reads a pinned server key from a JSON file in any shape
// ParseServerKey accepts. // comments are allowed.
func LoadPinnedKey(path string) (types.KeyHalf, error) {
	var raw json.RawMessage
	if err := jsonfile.ParseFile(path, &raw); err != nil {
		return types.KeyHalf{}, fmt.Errorf("read pinned key %s: %w", path, err)
	}
	return ParseServerKey(raw)
}
