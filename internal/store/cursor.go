package store

import (
	"encoding/base64"
	"strconv"
)

// EncodeCursor turns a zero-based offset into an opaque pagination cursor.
func EncodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// DecodeCursor returns the offset in cursor. Empty, malformed or negative
// cursors decode to 0.
func DecodeCursor(cursor string) int {
	if cursor == "" {
		return 0
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}
