package twitterweb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 6238 appendix B vectors, truncated to 6 digits. The shared
// secret is the ASCII string "12345678901234567890".
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestTOTPCodeVectors(t *testing.T) {
	tests := []struct {
		unix int64
		want string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
	}
	for _, tt := range tests {
		code, err := totpCodeAt(rfcSecret, time.Unix(tt.unix, 0))
		require.NoError(t, err)
		assert.Equal(t, tt.want, code, "t=%d", tt.unix)
	}
}

func TestTOTPCodeNormalizesSecret(t *testing.T) {
	spaced := "gezd gnbv gy3t qojq gezd gnbv gy3t qojq"
	a, err := totpCodeAt(rfcSecret, time.Unix(59, 0))
	require.NoError(t, err)
	b, err := totpCodeAt(spaced, time.Unix(59, 0))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTOTPCodeRejectsBadSecret(t *testing.T) {
	_, err := totpCodeAt("not base32!!", time.Unix(59, 0))
	assert.Error(t, err)
}
