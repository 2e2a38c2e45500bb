package service

// QRCodeService defines the interface for gift-card QR code rendering.
type QRCodeService interface {
	// GenerateGiftCardQR renders a PNG QR code carrying the card's redeem code.
	GenerateGiftCardQR(code string) ([]byte, error)

	// ParseGiftCardQR parses scanned QR payload and returns the redeem code.
	ParseGiftCardQR(qrData string) (string, error)
}
