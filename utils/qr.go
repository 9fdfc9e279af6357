package utils

import (
	"bytes"
	"image/png"
	"strings"

	"github.com/skip2/go-qrcode"
)

const TokenSeparator = "|"

// GenerateQRCode tạo QR code và trả về bytes PNG
func GenerateQRCode(content string, size int) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	err = png.Encode(buf, qr.Image(size))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// TableWaiterToken ghép mã in trên QR của bàn: "table_id|waiter_id".
func TableWaiterToken(tableId, waiterId string) string {
	return tableId + TokenSeparator + waiterId
}

// ParseTableWaiterToken chỉ chấp nhận đúng hai phần không rỗng.
func ParseTableWaiterToken(code string) (string, string, bool) {
	parts := strings.Split(code, TokenSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
