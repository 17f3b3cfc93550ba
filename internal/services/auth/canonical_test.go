package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionauth/internal/domain/types"
	"auctionauth/internal/services/auth"
)

func TestCanonicalSortsAndCompacts(t *testing.T) {
	got, err := auth.Canonical(map[string]any{
		"b": "<x>&",
		"a": map[string]any{"d": 1, "c": []int{3, 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"c":[3,2],"d":1},"b":"<x>&"}`, string(got))
}

func TestCanonicalStructFieldOrder(t *testing.T) {
	got, err := auth.Canonical(types.NewAuction{Title: "Lamp", Description: "Old lamp", Price: 10, Timestamp: 1700000000})
	require.NoError(t, err)
	assert.Equal(t, `{"description":"Old lamp","price":10,"timestamp":1700000000,"title":"Lamp"}`, string(got))
}

func TestCanonicalKeepsNumberText(t *testing.T) {
	got, err := auth.Canonical(map[string]any{"big": uint64(18446744073709551615), "f": 12.5})
	require.NoError(t, err)
	assert.Equal(t, `{"big":18446744073709551615,"f":12.5}`, string(got))
}
