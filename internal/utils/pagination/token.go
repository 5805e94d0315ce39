package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded token from a transaction date and
// creation time. This is used for consistent keyset pagination across the
// sale and purchase listings.
func EncodeToken(txnDate time.Time, createdAt time.Time) string {
	tokenStr := fmt.Sprintf("%s|%s", txnDate.Format(timeFormat), createdAt.Format(timeFormat))
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into transaction date and
// creation time.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	tokenStr := string(decodedBytes)
	parts := strings.SplitN(tokenStr, "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	txnDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (transaction date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return txnDate, createdAt, nil
}
