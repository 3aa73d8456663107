package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateInvoiceNumber generates a random invoice number in the format INV-XXXX-XXXX
func GenerateInvoiceNumber() (string, error) {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	hex := strings.ToUpper(hex.EncodeToString(bytes))
	return fmt.Sprintf("INV-%s-%s", hex[0:4], hex[4:8]), nil
}
