package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard date/time values
	txnDate := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	// Encode the token
	token := EncodeToken(txnDate, createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	// Decode the token and verify
	decodedTxnDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, txnDate, decodedTxnDate, "Transaction date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")

	// Test case 2: Zero time values
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, zeroTime)
	decodedZeroDate, decodedZeroTime, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroDate, "Zero date should match after decode")
	assert.Equal(t, zeroTime, decodedZeroTime, "Zero time should match after decode")

	// Test case 3: Current time values
	now := time.Now().UTC()
	nowToken := EncodeToken(now, now)
	decodedNowDate, decodedNowTime, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")

	// Due to potential nanosecond precision issues, use Equal instead of direct comparison
	assert.True(t, now.Equal(decodedNowDate), "Current date should match after decode")
	assert.True(t, now.Equal(decodedNowTime), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := "MjAyNC0wNS0xNVQwMDowMDowMFo=" // Base64 encoded date without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid date format
	invalidDateToken := "bm90YWRhdGV8MjAyNC0wNS0xNVQxNDozMDo0NS4xMjM0NTY3ODla" // Base64 encoded "notadate|2024-05-15T14:30:45.123456789Z"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "transaction date parse", "Error should mention date parsing issue")
}
