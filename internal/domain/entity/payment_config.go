package entity

// PaymentConfig is the singleton at payment_qr/current. Saves replace the
// whole document.
type PaymentConfig struct {
	QRCodeURL string `json:"qr_code_url" firestore:"qrCodeUrl"`
}

func (p *PaymentConfig) IsConfigured() bool {
	return p != nil && p.QRCodeURL != ""
}
