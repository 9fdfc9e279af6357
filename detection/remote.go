package detection

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"gastro_vision/constants"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
)

type classifyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type decodeResponse struct {
	Codes []struct {
		Data    string   `json:"data"`
		Polygon [][2]int `json:"polygon"`
	} `json:"codes"`
}

// RemoteDetector gọi dịch vụ suy luận (model Food-101 + bộ đọc QR) qua HTTP.
// Khả năng sẵn sàng được kiểm tra một lần lúc khởi động bằng Probe.
type RemoteDetector struct {
	baseURL   string
	timeout   time.Duration
	available atomic.Bool
}

func NewRemoteDetector(baseURL string, timeout time.Duration) *RemoteDetector {
	return &RemoteDetector{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// Probe gọi /health; nếu lỗi, mọi lần phân loại sau đó trả Unavailable.
func (d *RemoteDetector) Probe() bool {
	a := fiber.Get(d.baseURL + "/health").Timeout(d.timeout)
	code, _, errs := a.Bytes()
	ok := len(errs) == 0 && code == fiber.StatusOK
	d.available.Store(ok)
	if !ok {
		log.Printf("[DETECTION] WARNING: inference service %s unavailable, food prediction disabled", d.baseURL)
	} else {
		log.Printf("[DETECTION] inference service %s ready", d.baseURL)
	}
	return ok
}

func (d *RemoteDetector) Available() bool {
	return d.available.Load()
}

func (d *RemoteDetector) ClassifyFood(_ context.Context, frame []byte) Classification {
	if !d.available.Load() {
		return Unavailable()
	}

	var out classifyResponse
	a := fiber.Post(d.baseURL + "/classify").
		ContentType("image/jpeg").
		Body(frame).
		Timeout(d.timeout)
	code, _, errs := a.Struct(&out)
	if err := firstError(code, errs); err != nil {
		log.Printf("[DETECTION] classify failed: %v", err)
		return Unavailable()
	}
	if !IsKnownClass(out.Label) {
		return Detected(constants.UNKNOWN_FOOD, 0)
	}
	return Detected(out.Label, out.Confidence)
}

func (d *RemoteDetector) DecodeCodes(_ context.Context, frame []byte) ([]Code, error) {
	if !d.available.Load() {
		return nil, utils.ErrCapabilityUnavailable
	}

	var out decodeResponse
	a := fiber.Post(d.baseURL + "/decode").
		ContentType("image/jpeg").
		Body(frame).
		Timeout(d.timeout)
	code, _, errs := a.Struct(&out)
	if err := firstError(code, errs); err != nil {
		return nil, fmt.Errorf("decode codes: %w", errors.Join(utils.ErrCapabilityUnavailable, err))
	}

	codes := make([]Code, 0, len(out.Codes))
	for _, c := range out.Codes {
		polygon := make([]image.Point, 0, len(c.Polygon))
		for _, p := range c.Polygon {
			polygon = append(polygon, image.Pt(p[0], p[1]))
		}
		codes = append(codes, Code{Data: c.Data, Polygon: polygon})
	}
	return codes, nil
}

func firstError(code int, errs []error) error {
	if len(errs) > 0 {
		return errs[0]
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("unexpected status %d", code)
	}
	return nil
}
