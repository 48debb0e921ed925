package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"agriconnect/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// FarmerProfileType tags payloads that point at a farmer's public profile.
const FarmerProfileType = "farmer_profile"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	FarmerID string `json:"farmer_id"`
	Type     string `json:"type"`
	URL      string `json:"url,omitempty"`
}

// NewQRCodeService creates a new QR code service instance.
// baseURL, when set, is used to embed a link to the farmer's profile page.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateFarmerQR encodes the farmer id and profile link as a PNG QR code
func (s *qrcodeService) GenerateFarmerQR(farmerID uuid.UUID) ([]byte, error) {
	jsonData, err := json.Marshal(s.payload(farmerID))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

func (s *qrcodeService) payload(farmerID uuid.UUID) QRCodeData {
	data := QRCodeData{
		FarmerID: farmerID.String(),
		Type:     FarmerProfileType,
	}
	if s.baseURL != "" {
		data.URL = s.baseURL + "/farmers/" + farmerID.String()
	}

	return data
}

// ParseFarmerQR parses scanned QR code data and returns the farmer ID
func (s *qrcodeService) ParseFarmerQR(qrData string) (uuid.UUID, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != FarmerProfileType {
		return uuid.Nil, fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	farmerID, err := uuid.Parse(data.FarmerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse farmer ID: %w", err)
	}

	return farmerID, nil
}
