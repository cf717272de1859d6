package helpers

import (
	// "crypto/sha256"

	"crypto/rand"
	"encoding/hex"
	"strconv"

	sha256 "github.com/minio/sha256-simd"
)

func SerializeSHA256(txt string) string {
	// h := sha256.New()
	// h.Write([]byte(txt))
	// return hex.EncodeToString(h.Sum(nil))
	return acceleratedSha256(txt)
}

func acceleratedSha256(txt string) string {
	shaWriter := sha256.New()
	shaWriter.Write([]byte(txt))
	digest := hex.EncodeToString(shaWriter.Sum(nil))
	return digest
}

// FormatAmount renders an amount the one way it is ever concatenated into
// hash input. Changing this format changes every signature and block digest.
func FormatAmount(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// RandomHex returns n random bytes as a lowercase hex string.
func RandomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}

// NewNodeID generates the identifier a running chain reports in its summary.
func NewNodeID() string {
	return RandomHex(8)
}
