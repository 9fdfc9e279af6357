package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"gastro_vision/camera"
	"gastro_vision/constants"
	"gastro_vision/detection"
	"gastro_vision/gate"
	"gastro_vision/model"
	"gastro_vision/monitoring"
	"gastro_vision/overlay"
	"gastro_vision/utils"
)

type FoodCatalog interface {
	FindFoodByName(ctx context.Context, name string) (*model.Food, error)
}

// Observer nhận các giá trị "vừa thấy" để API /last_qr, /last_food đọc.
type Observer interface {
	ObserveCode(code string)
	ObserveFood(label string, confidence float64)
}

type Options struct {
	Threshold   float64
	JPEGQuality int
}

// Loop xử lý một luồng camera; lastCode và lastFood chỉ sống trong luồng đó.
type Loop struct {
	detector detection.Detector
	gate     *gate.Gate
	catalog  FoodCatalog
	observer Observer
	opts     Options

	lastCode string
	lastFood string
}

func New(d detection.Detector, g *gate.Gate, catalog FoodCatalog, observer Observer, opts Options) *Loop {
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 80
	}
	return &Loop{detector: d, gate: g, catalog: catalog, observer: observer, opts: opts}
}

// Run kéo khung hình tới khi nguồn cạn, ctx huỷ hoặc emit lỗi (client ngắt kết nối).
// Nguồn cạn trả về lỗi bọc utils.ErrSourceExhausted; client ngắt thì trả nil.
func (l *Loop) Run(ctx context.Context, src camera.Source, emit func(jpeg []byte) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, utils.ErrSourceExhausted) {
				log.Printf("[PIPELINE] stream ended: %v", err)
			}
			return err
		}
		out, err := l.Process(ctx, frame)
		if err != nil {
			log.Printf("[PIPELINE] frame %d: %v", frame.Seq, err)
			continue
		}
		if err := emit(out); err != nil {
			log.Printf("[PIPELINE] consumer gone: %v", err)
			return nil
		}
	}
}

// Process chạy nhận diện trên một khung hình, cập nhật cổng chờ và trả JPEG đã chú thích.
func (l *Loop) Process(ctx context.Context, frame camera.Frame) ([]byte, error) {
	monitoring.TrackFrame()
	canvas := overlay.New(frame.Image)

	codes, err := l.detector.DecodeCodes(ctx, frame.Raw)
	switch {
	case err != nil:
		monitoring.TrackDetection("code", "unavailable")
	case len(codes) == 0:
		monitoring.TrackDetection("code", "miss")
	default:
		monitoring.TrackDetection("code", "hit")
	}
	for _, code := range codes {
		if code.Data != l.lastCode {
			l.lastCode = code.Data
			if l.observer != nil {
				l.observer.ObserveCode(code.Data)
			}
		}
		canvas.Polygon(code.Polygon, overlay.Green)
		canvas.Text(labelAnchor(code.Polygon).X, labelAnchor(code.Polygon).Y, code.Data, overlay.Green)
	}

	result := l.detector.ClassifyFood(ctx, frame.Raw)
	if !result.Available() {
		monitoring.TrackDetection("food", "unavailable")
		canvas.Placeholder()
		return canvas.JPEG(l.opts.JPEGQuality)
	}
	monitoring.TrackDetection("food", "hit")
	l.lastFood = result.Label
	if l.observer != nil {
		l.observer.ObserveFood(result.Label, result.Confidence)
	}
	canvas.Text(10, 30, fmt.Sprintf("Food: %s (%.2f)", result.Label, result.Confidence), overlay.Yellow)

	l.maybeStage(ctx, result, frame.Timestamp)
	return canvas.JPEG(l.opts.JPEGQuality)
}

func (l *Loop) maybeStage(ctx context.Context, result detection.Classification, at time.Time) {
	if !l.gate.Empty() || l.lastCode == "" || l.lastFood == "" || l.lastFood == constants.UNKNOWN_FOOD {
		return
	}
	if result.Confidence < l.opts.Threshold {
		return
	}
	tableId, waiterId, ok := utils.ParseTableWaiterToken(l.lastCode)
	if !ok {
		return
	}

	var price *float64
	food, err := l.catalog.FindFoodByName(ctx, l.lastFood)
	switch {
	case err == nil:
		price = utils.Ptr(food.Price)
	case !errors.Is(err, utils.ErrNotFound):
		log.Printf("[PIPELINE] price lookup %s: %v", l.lastFood, err)
	}

	l.gate.TryStage(model.PendingOrder{
		TableId:    tableId,
		WaiterId:   waiterId,
		FoodName:   l.lastFood,
		Price:      price,
		Confidence: result.Confidence,
		Timestamp:  at,
	})
}

func (l *Loop) LastCode() string {
	return l.lastCode
}

func (l *Loop) LastFood() string {
	return l.lastFood
}

func labelAnchor(polygon []image.Point) image.Point {
	if len(polygon) == 0 {
		return image.Pt(10, 15)
	}
	top := polygon[0]
	for _, p := range polygon[1:] {
		if p.Y < top.Y {
			top = p
		}
	}
	return image.Pt(top.X, top.Y-5)
}
