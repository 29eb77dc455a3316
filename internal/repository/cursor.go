package repository

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const cursorSeparator = "_"

// encodeCursor builds a cursor string from a row's creation time and id.
func encodeCursor(t time.Time, id uuid.UUID) string {
	key := fmt.Sprintf("%d%s%s", t.UnixNano(), cursorSeparator, id.String())
	return base64.URLEncoding.EncodeToString([]byte(key))
}

// decodeCursor splits a cursor string back into time and id. An empty cursor
// is not an error.
func decodeCursor(cursor string) (time.Time, uuid.UUID, error) {
	if cursor == "" {
		return time.Time{}, uuid.Nil, nil
	}
	decodedBytes, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("bad cursor (base64 decode): %w", err)
	}
	key := string(decodedBytes)
	parts := strings.SplitN(key, cursorSeparator, 2)
	if len(parts) != 2 {
		return time.Time{}, uuid.Nil, fmt.Errorf("bad cursor (separator)")
	}

	timestampNano, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("bad cursor (timestamp): %w", err)
	}
	t := time.Unix(0, timestampNano).UTC()

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return time.Time{}, uuid.Nil, fmt.Errorf("bad cursor (uuid): %w", err)
	}

	return t, id, nil
}
