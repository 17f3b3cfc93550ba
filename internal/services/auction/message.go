package auction

import (
	"encoding/json"
	"fmt"

	"auctionauth/internal/domain/types"
)

// Message unwraps a {"message": ..., "signature": ...} response into the JSON
// it carries. The message may be an embedded JSON string or an inline value.
// Bodies without such a message (or whose message is plain text) are returned
// unchanged.
func Message(raw []byte) (json.RawMessage, error) {
	var env struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		if json.Valid(raw) {
			return raw, nil // array or scalar body
		}
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if len(env.Message) == 0 {
		return raw, nil
	}

	var inner string
	if err := json.Unmarshal(env.Message, &inner); err != nil {
		return env.Message, nil
	}
	if json.Valid([]byte(inner)) {
		return json.RawMessage(inner), nil
	}
	return raw, nil
}

// parseToken finds access_token at the top level or inside message.
func parseToken(raw []byte) (string, error) {
	for _, candidate := range [][]byte{raw, messageOrNil(raw)} {
		var grant types.LoginResponse
		if err := json.Unmarshal(candidate, &grant); err == nil && grant.AccessToken != "" {
			return grant.AccessToken, nil
		}
	}
	return "", ErrNoToken
}

func messageOrNil(raw []byte) []byte {
	m, err := Message(raw)
	if err != nil {
		return nil
	}
	return m
}
