package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
		{"Default size", 0, "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel, "")
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateFarmerQR(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, "M", "http://localhost:5173")

			qrBytes, err := service.GenerateFarmerQR(uuid.New())
			require.NoError(t, err)
			require.Greater(t, len(qrBytes), 4)

			// PNG magic number
			assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
		})
	}
}

func TestQRCodeService_Payload(t *testing.T) {
	farmerID := uuid.New()

	withURL := NewQRCodeService(256, "M", "https://agriconnect.rw/").(*qrcodeService)
	data := withURL.payload(farmerID)
	assert.Equal(t, farmerID.String(), data.FarmerID)
	assert.Equal(t, FarmerProfileType, data.Type)
	assert.Equal(t, "https://agriconnect.rw/farmers/"+farmerID.String(), data.URL)

	withoutURL := NewQRCodeService(256, "M", "").(*qrcodeService)
	assert.Empty(t, withoutURL.payload(farmerID).URL)
}

func TestQRCodeService_ParseFarmerQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "https://agriconnect.rw")
	farmerID := uuid.New()

	jsonData, err := json.Marshal(service.(*qrcodeService).payload(farmerID))
	require.NoError(t, err)

	parsedID, err := service.ParseFarmerQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, farmerID, parsedID)
}

func TestQRCodeService_ParseFarmerQR_Invalid(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"invalid json", "invalid json", "failed to unmarshal QR code data"},
		{"wrong type", `{"farmer_id":"` + uuid.NewString() + `","type":"subscription"}`, "invalid QR code type"},
		{"bad uuid", `{"farmer_id":"not-a-valid-uuid","type":"farmer_profile"}`, "failed to parse farmer ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ParseFarmerQR(tt.data)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
