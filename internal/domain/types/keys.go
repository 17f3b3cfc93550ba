package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidKey is returned when key material is missing or out of range.
	ErrInvalidKey = errors.New("invalid key material")
)

// KeyHalf is one exponent+modulus pair, public or private.
//
// The fields are unexported so the modulus stays fixed after construction;
// accessors hand out copies.
type KeyHalf struct {
	exponent *big.Int
	modulus  *big.Int
}

// NewKeyHalf validates and copies e and n. The modulus must be at least 2 and
// the exponent non-negative.
func NewKeyHalf(e, n *big.Int) (KeyHalf, error) {
	if e == nil || n == nil {
		return KeyHalf{}, fmt.Errorf("%w: nil exponent or modulus", ErrInvalidKey)
	}
	if e.Sign() < 0 {
		return KeyHalf{}, fmt.Errorf("%w: negative exponent", ErrInvalidKey)
	}
	if n.Cmp(big.NewInt(2)) < 0 {
		return KeyHalf{}, fmt.Errorf("%w: modulus must be >= 2", ErrInvalidKey)
	}
	return KeyHalf{
		exponent: new(big.Int).Set(e),
		modulus:  new(big.Int).Set(n),
	}, nil
}

// MustKeyHalf is NewKeyHalf for constants; it panics on invalid input.
func MustKeyHalf(e, n *big.Int) KeyHalf {
	k, err := NewKeyHalf(e, n)
	if err != nil {
		panic(err)
	}
	return k
}

// ParseKeyHalf builds a KeyHalf from decimal strings.
func ParseKeyHalf(e, n string) (KeyHalf, error) {
	eInt, ok := new(big.Int).SetString(e, 10)
	if !ok {
		return KeyHalf{}, fmt.Errorf("%w: exponent %q is not a decimal integer", ErrInvalidKey, e)
	}
	nInt, ok := new(big.Int).SetString(n, 10)
	if !ok {
		return KeyHalf{}, fmt.Errorf("%w: modulus %q is not a decimal integer", ErrInvalidKey, n)
	}
	return NewKeyHalf(eInt, nInt)
}

// Exponent returns a copy of the exponent.
func (k KeyHalf) Exponent() *big.Int { return copyInt(k.exponent) }

// Modulus returns a copy of the modulus.
func (k KeyHalf) Modulus() *big.Int { return copyInt(k.modulus) }

// IsZero reports whether k was never initialised.
func (k KeyHalf) IsZero() bool { return k.modulus == nil }

// Equal reports whether both halves carry the same exponent and modulus.
func (k KeyHalf) Equal(o KeyHalf) bool {
	if k.IsZero() || o.IsZero() {
		return k.IsZero() == o.IsZero()
	}
	return k.exponent.Cmp(o.exponent) == 0 && k.modulus.Cmp(o.modulus) == 0
}

// String returns "e:n" in decimal.
func (k KeyHalf) String() string {
	if k.IsZero() {
		return "<nil>"
	}
	return k.exponent.String() + ":" + k.modulus.String()
}

type keyHalfJSON struct {
	E decimal `json:"e"`
	N decimal `json:"n"`
}

// MarshalJSON encodes as {"e": "<decimal>", "n": "<decimal>"}.
func (k KeyHalf) MarshalJSON() ([]byte, error) {
	if k.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		E string `json:"e"`
		N string `json:"n"`
	}{E: k.exponent.String(), N: k.modulus.String()})
}

// UnmarshalJSON accepts e and n either as decimal strings or JSON numbers.
func (k *KeyHalf) UnmarshalJSON(data []byte) error {
	var aux keyHalfJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.E.v == nil || aux.N.v == nil {
		return fmt.Errorf("%w: missing e or n", ErrInvalidKey)
	}
	half, err := NewKeyHalf(aux.E.v, aux.N.v)
	if err != nil {
		return err
	}
	*k = half
	return nil
}

// KeyPair is a matched public/private set sharing one modulus.
type KeyPair struct {
	Public  KeyHalf `json:"public"`
	Private KeyHalf `json:"private"`
}

// NewKeyPair checks that both halves share the same modulus.
func NewKeyPair(public, private KeyHalf) (KeyPair, error) {
	if public.IsZero() || private.IsZero() {
		return KeyPair{}, fmt.Errorf("%w: incomplete key pair", ErrInvalidKey)
	}
	if public.modulus.Cmp(private.modulus) != 0 {
		return KeyPair{}, fmt.Errorf("%w: public and private modulus differ", ErrInvalidKey)
	}
	return KeyPair{Public: public, Private: private}, nil
}

// decimal decodes a big integer written as a JSON string or a bare number.
type decimal struct{ v *big.Int }

func (d *decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	v, ok := new(big.Int).SetString(string(data), 10)
	if !ok {
		return fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidKey, data)
	}
	d.v = v
	return nil
}

func copyInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
