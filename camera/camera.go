package camera

import (
	"bytes"
	"context"
	"image"
	"time"

	"github.com/disintegration/imaging"
)

// Frame là một khung hình đã giải mã kèm bytes JPEG gốc.
type Frame struct {
	Seq       uint64
	Timestamp time.Time
	Image     image.Image
	Raw       []byte
}

// Source cung cấp chuỗi khung hình trực tiếp, không khởi động lại được.
// Next trả lỗi bọc utils.ErrSourceExhausted khi thiết bị hỏng hoặc mất kết nối.
type Source interface {
	Next(ctx context.Context) (Frame, error)
	Close() error
}

// toJPEG chuẩn hoá dữ liệu ảnh về JPEG cho dịch vụ suy luận.
func toJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
