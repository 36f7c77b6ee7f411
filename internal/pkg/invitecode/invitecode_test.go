package invitecode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("codes carry the prefix and a 6 character suffix", func(t *testing.T) {
		code, err := Generate()

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(code, Prefix))
		assert.Len(t, code, len(Prefix)+suffixLength)
	})

	t.Run("suffix characters come from the base-36 alphabet", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code, err := Generate()
			require.NoError(t, err)

			suffix := strings.TrimPrefix(code, Prefix)
			for _, r := range suffix {
				assert.Contains(t, alphabet, string(r))
			}
		}
	})
}
