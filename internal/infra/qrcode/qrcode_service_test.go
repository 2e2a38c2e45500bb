package qrcode

import (
	"encoding/json"
	"testing"

	"atelier/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(size int, level string) *config.Config {
	cfg := new(config.Config)
	cfg.QRCode = &config.QRCodeConfig{Size: size, ErrorCorrectionLevel: level}

	return cfg
}

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
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(testConfig(tt.size, tt.errorCorrectionLevel))
			assert.NotNil(t, service)
		})
	}
}

func TestNewQRCodeService_NilSection(t *testing.T) {
	service := NewQRCodeService(new(config.Config))
	require.NotNil(t, service)

	qrBytes, err := service.GenerateGiftCardQR("GC-DEFAULT")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)
}

func TestQRCodeService_GenerateGiftCardQR(t *testing.T) {
	service := NewQRCodeService(testConfig(256, "M"))

	qrBytes, err := service.GenerateGiftCardQR("GC-A1B2C3")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GenerateGiftCardQR_DifferentSizes(t *testing.T) {
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
			service := NewQRCodeService(testConfig(tt.size, "M"))

			qrBytes, err := service.GenerateGiftCardQR("GC-A1B2C3")
			require.NoError(t, err)
			assert.NotEmpty(t, qrBytes)
		})
	}
}

func TestQRCodeService_ParseGiftCardQR(t *testing.T) {
	service := NewQRCodeService(testConfig(256, "M"))

	data := QRCodeData{
		Code: "GC-A1B2C3",
		Type: "gift_card",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	code, err := service.ParseGiftCardQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, "GC-A1B2C3", code)
}

func TestQRCodeService_ParseGiftCardQR_InvalidJSON(t *testing.T) {
	service := NewQRCodeService(testConfig(256, "M"))

	_, err := service.ParseGiftCardQR("invalid json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal QR code data")
}

func TestQRCodeService_ParseGiftCardQR_InvalidType(t *testing.T) {
	service := NewQRCodeService(testConfig(256, "M"))

	data := QRCodeData{
		Code: "GC-A1B2C3",
		Type: "subscription",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseGiftCardQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid QR code type")
}

func TestQRCodeService_ParseGiftCardQR_EmptyCode(t *testing.T) {
	service := NewQRCodeService(testConfig(256, "M"))

	data := QRCodeData{
		Code: "",
		Type: "gift_card",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	_, err = service.ParseGiftCardQR(string(jsonData))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no gift card code")
}

func TestQRCodeService_RoundTrip(t *testing.T) {
	service := NewQRCodeService(testConfig(256, "M"))

	qrBytes, err := service.GenerateGiftCardQR("GC-ROUND1")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// The PNG itself cannot be decoded here; the payload format is what the
	// scanner hands back, so parse that directly.
	data := QRCodeData{
		Code: "GC-ROUND1",
		Type: "gift_card",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	code, err := service.ParseGiftCardQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, "GC-ROUND1", code)
}
