package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateFarmerQR generates a PNG QR code linking to a farmer's public profile
	GenerateFarmerQR(farmerID uuid.UUID) ([]byte, error)

	// ParseFarmerQR parses QR code data and returns the farmer ID
	ParseFarmerQR(qrData string) (uuid.UUID, error)
}
