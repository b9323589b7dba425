package hexconv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHalfbyte(t *testing.T) {
	t.Run("digits", func(t *testing.T) {
		for c := byte('0'); c <= '9'; c++ {
			require.Equal(t, c-'0', Halfbyte[c])
		}
	})

	t.Run("letters", func(t *testing.T) {
		for c := byte('a'); c <= 'f'; c++ {
			require.Equal(t, c-'a'+0x0a, Halfbyte[c])
		}

		for c := byte('A'); c <= 'F'; c++ {
			require.Equal(t, c-'A'+0x0a, Halfbyte[c])
		}
	})

	t.Run("everything else is invalid", func(t *testing.T) {
		isHex := func(c byte) bool {
			return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
		}

		for c := 0; c < 256; c++ {
			if !isHex(byte(c)) {
				require.Greater(t, Halfbyte[c], byte(0x0f), c)
			}
		}
	})
}
