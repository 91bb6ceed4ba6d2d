package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSixID_StringParseRoundTrip(t *testing.T) {
	id := NewSixID()
	encoded := id.String()
	assert.Len(t, encoded, 10)

	parsed, err := ParseSixID(encoded)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseSixID_Lenient(t *testing.T) {
	id := NewSixID()
	encoded := id.String()

	// Hyphens and spaces are stripped before decoding
	parsed, err := ParseSixID(encoded[:5] + "-" + encoded[5:])
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseSixID_Errors(t *testing.T) {
	_, err := ParseSixID("short")
	assert.Error(t, err)

	_, err = ParseSixID("!!!!!!!!!!")
	assert.Error(t, err)
}

func TestParseSixID_EmptyIsZero(t *testing.T) {
	parsed, err := ParseSixID("")
	require.NoError(t, err)
	assert.True(t, parsed.IsZero())
}

func TestSixID_IsZero(t *testing.T) {
	assert.True(t, SixID{}.IsZero())
	assert.False(t, NewSixID().IsZero())
}
