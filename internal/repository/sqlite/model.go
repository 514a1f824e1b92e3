package sqlite

import "time"

// Entry is one stored key with its serialized blob.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Timestamps are stored as RFC3339 text in UTC with second precision.
const stampLayout = time.RFC3339

func formatStamp(t time.Time) string {
	return t.UTC().Format(stampLayout)
}

func parseStamp(s string) (time.Time, error) {
	return time.Parse(stampLayout, s)
}
