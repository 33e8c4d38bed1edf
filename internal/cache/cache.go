// Package cache provides the request-scoped record cache used during
// filter enrichment. Nothing here outlives a single request: the stateless
// contract of the service allows no cross-request cache of record.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/va2ai/bvaapi2/internal/model"
)

// RecordCache stores extracted CaseRecords keyed by document URL.
type RecordCache interface {
	Get(url string) (*model.CaseRecord, bool)
	Set(url string, rec *model.CaseRecord)
}

// Key normalizes a document URL into a cache key.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "bva:v1:" + hex.EncodeToString(hash[:])
}
