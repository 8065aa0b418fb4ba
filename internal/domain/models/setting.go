package models

import "encoding/json"

// Setting is one persisted key→value preference. Values are opaque JSON.
type Setting struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// CacheEntry is one url-keyed cache record. Expires is epoch millis;
// zero means no expiry.
type CacheEntry struct {
	URL     string          `json:"url"`
	Data    json.RawMessage `json:"data"`
	Expires int64           `json:"expires"`
}
