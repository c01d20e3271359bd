package models

import "time"

// IdempotencyRecord stores the first response seen for an Idempotency-Key so
// that replays within the TTL window return it instead of re-executing.
type IdempotencyRecord struct {
	Key         string                 `json:"key" bson:"key"`
	Method      string                 `json:"method" bson:"method"`
	Path        string                 `json:"path" bson:"path"`
	UserID      string                 `json:"userid" bson:"userid"`
	RequestHash string                 `json:"request_hash" bson:"request_hash"`
	Response    map[string]interface{} `json:"response,omitempty" bson:"response,omitempty"`
	CreatedAt   time.Time              `json:"created_at" bson:"created_at"`
	ExpiresAt   time.Time              `json:"expires_at" bson:"expires_at"`
}
