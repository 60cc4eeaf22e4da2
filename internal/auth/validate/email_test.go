package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	t.Run("accepts valid addresses", func(t *testing.T) {
		valid := []string{
			"user@example.com",
			"first.last@sub.example.com",
			"user+tag@example.com",
			"o'brien@example.ie",
			"a@b.co",
		}
		for _, addr := range valid {
			got, err := Email(addr)
			require.NoError(t, err, "expected %q to be valid", addr)
			require.Equal(t, addr, got)
		}
	})

	t.Run("rejects invalid addresses", func(t *testing.T) {
		invalid := []string{
			"",
			"not-an-email",
			"@example.com",
			"user@",
			"user example.com",
		}
		for _, addr := range invalid {
			_, err := Email(addr)
			require.Error(t, err, "expected %q to be invalid", addr)
			require.EqualError(t, err, "Email must be a valid email address")
		}
	})

	t.Run("rejects partial matches", func(t *testing.T) {
		// The pattern finds an address inside these, but it does not
		// cover the whole input.
		_, err := Email("user@example.com trailing")
		require.EqualError(t, err, "Email must be a valid email address")

		_, err = Email("prefix user@example.com")
		require.EqualError(t, err, "Email must be a valid email address")
	})

	t.Run("rejects non-string values", func(t *testing.T) {
		for _, v := range []any{nil, 42, true, []any{"user@example.com"}} {
			_, err := Email(v)
			require.EqualError(t, err, "Email must be of type string")
		}
	})
}

func TestString(t *testing.T) {
	t.Parallel()

	s, ok := String("hello")
	require.True(t, ok)
	require.Equal(t, "hello", s)

	_, ok = String(nil)
	require.False(t, ok)

	_, ok = String(3.14)
	require.False(t, ok)
}
