package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Nanosecond precision must survive the round trip so the keyset
	// comparison picks up exactly where the previous page ended.
	date := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 8, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(date, createdAt)
	require.NotEmpty(t, token)

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, date, decodedDate)
	assert.Equal(t, createdAt, decodedCreatedAt)

	// Zero values still round-trip; an empty listing never produces a token
	// but a caller echoing one back must not break decoding.
	zero := time.Time{}
	decodedDate, decodedCreatedAt, err = DecodeToken(EncodeToken(zero, zero))
	require.NoError(t, err)
	assert.True(t, zero.Equal(decodedDate))
	assert.True(t, zero.Equal(decodedCreatedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64 but no separator between the two timestamps.
	noSeparator := base64.StdEncoding.EncodeToString([]byte("2025-08-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|2025-08-15T14:30:45.123456789Z"))
	_, _, err = DecodeToken(badDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")

	badCreatedAt := base64.StdEncoding.EncodeToString([]byte("2025-08-15T00:00:00Z|notatime"))
	_, _, err = DecodeToken(badCreatedAt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}
