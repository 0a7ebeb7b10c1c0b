package storage

import "github.com/pedalworks/velosearch/core"

// Validity classifies the state of persisted artifacts relative to the
// current catalog.
type Validity int

const (
	// Valid means all three artifacts exist and the stored fingerprint
	// matches the current catalog fingerprint; the cache may be loaded.
	Valid Validity = iota
	// Missing means at least one artifact is absent; a rebuild is needed.
	Missing
	// Stale means the artifacts exist but were built from a different
	// catalog; a rebuild is needed.
	Stale
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Missing:
		return "missing"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// Observations captures the four facts the validity decision depends on.
// It is gathered by Store.Observe but can be constructed directly in tests.
type Observations struct {
	EmbeddingsPresent  bool
	IndexPresent       bool
	FingerprintPresent bool
	StoredFingerprint  core.Fingerprint
	CurrentFingerprint core.Fingerprint
}

// Classify maps observations to a validity outcome. It is a pure function:
// any absent artifact classifies as Missing, a fingerprint mismatch as
// Stale, and only a complete matching triple as Valid.
func Classify(obs Observations) Validity {
	if !obs.EmbeddingsPresent || !obs.IndexPresent || !obs.FingerprintPresent {
		return Missing
	}
	if obs.StoredFingerprint != obs.CurrentFingerprint {
		return Stale
	}
	return Valid
}
