package twitterweb

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/sekai-soft/yurikamome/pkg/errors"
)

// totpCode derives the current RFC 6238 code from a base32 secret,
// 30 second step and 6 digits, which is what the upstream 2FA
// enrollment issues.
func totpCode(secret string) (string, error) {
	return totpCodeAt(secret, time.Now())
}

func totpCodeAt(secret string, now time.Time) (string, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(secret, " ", ""))
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(normalized)
	if err != nil {
		return "", apperrors.Wrap(err, "invalid TOTP secret")
	}

	counter := uint64(now.Unix() / 30)
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%06d", code%1_000_000), nil
}
