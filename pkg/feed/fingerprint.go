package feed

import (
	"encoding/hex"
	"hash/fnv"
)

// Fingerprint returns a fast non-cryptographic hash of raw content, hex encoded.
// Used only to detect that a feed document changed between fetches.
func Fingerprint(body []byte) string {
	h := fnv.New128a()
	_, _ = h.Write(body) // never fails for hash.Hash
	return hex.EncodeToString(h.Sum(nil))
}
