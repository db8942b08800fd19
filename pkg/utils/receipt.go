package utils

import "github.com/google/uuid"

// GenerateReceiptNo generates a unique receipt/reference number
func GenerateReceiptNo(prefix string) string {
	return prefix + uuid.New().String()[:8]
}
