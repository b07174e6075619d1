package qrcode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the pixel width/height of generated QR images
const DefaultSize = 256

// CardData is the payload encoded into a member's QR code
type CardData struct {
	MemberID       string `json:"member_id"`
	Name           string `json:"name"`
	MembershipType string `json:"membership_type"`
}

// Generate derives the base64-encoded QR PNG stored on a member row.
// It must be re-invoked by the write path whenever any CardData field
// changes.
func Generate(data CardData) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal QR payload: %w", err)
	}

	pngBytes, err := qrcode.Encode(string(jsonData), qrcode.Medium, DefaultSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	return base64.StdEncoding.EncodeToString(pngBytes), nil
}

// Parse decodes a scanned QR payload back into card data
func Parse(payload string) (*CardData, error) {
	var data CardData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal QR payload: %w", err)
	}
	if data.MemberID == "" {
		return nil, fmt.Errorf("QR payload missing member identifier")
	}
	return &data, nil
}
