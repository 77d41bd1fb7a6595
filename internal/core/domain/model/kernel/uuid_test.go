package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid random UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should accept the supported textual forms", func(t *testing.T) {
		for _, in := range []string{
			canonical,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(in)

			require.NoError(t, err, in)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, in := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", "zzze8400-e29b-41d4-a716-446655440000"} {
			_, err := kernel.UUIDFromString(in)

			require.Error(t, err, in)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should parse the nil UUID but fail validation", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		require.NoError(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through Bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject short input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject all-zero bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_BytesIsACopy(t *testing.T) {
	original := kernel.NewUUID()
	before := original.String()

	raw := original.Bytes()
	for i := range raw {
		raw[i] = 0xFF
	}

	assert.Equal(t, before, original.String())
	assert.NotEqual(t, before, uuid.UUID(raw).String())
}

func TestUUID_ZeroValue(t *testing.T) {
	var a, b kernel.UUID

	assert.True(t, a.IsEqual(b))
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, a.Validate())
}
