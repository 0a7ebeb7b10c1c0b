package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint is an opaque fixed-length content hash over the raw bytes of
// a catalog source. Equal fingerprints imply byte-identical catalog content;
// any byte difference, including formatting, yields a different fingerprint.
type Fingerprint string

// fingerprintSize is the BLAKE2b digest length in bytes.
const fingerprintSize = 32

// FingerprintBytes computes the fingerprint of raw catalog source bytes
// using BLAKE2b. The check is deliberately syntactic, not semantic: a
// whitespace-only edit produces a new fingerprint and forces a rebuild.
func FingerprintBytes(raw []byte) Fingerprint {
	h, _ := blake2b.New(fingerprintSize, nil)
	h.Write(raw)
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

func (f Fingerprint) String() string {
	return string(f)
}
