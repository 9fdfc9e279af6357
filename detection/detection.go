package detection

import (
	"context"
	"image"

	"gastro_vision/constants"
)

// Code là một mã QR đọc được trong khung hình.
type Code struct {
	Data    string        `json:"data"`
	Polygon []image.Point `json:"polygon"`
}

// Classification là kết quả phân loại món ăn: hoặc Detected, hoặc Unavailable.
type Classification struct {
	Label      string
	Confidence float64
	available  bool
}

func Detected(label string, confidence float64) Classification {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Classification{Label: label, Confidence: confidence, available: true}
}

// Unavailable: model không nạp được hoặc suy luận lỗi; nhãn lùi về "unknown", độ tin cậy 0.
func Unavailable() Classification {
	return Classification{Label: constants.UNKNOWN_FOOD}
}

func (c Classification) Available() bool {
	return c.available
}

type Detector interface {
	DecodeCodes(ctx context.Context, frame []byte) ([]Code, error)
	ClassifyFood(ctx context.Context, frame []byte) Classification
}
