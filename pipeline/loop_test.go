package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"
	"time"

	"gastro_vision/camera"
	"gastro_vision/detection"
	"gastro_vision/gate"
	"gastro_vision/model"
	"gastro_vision/store"
	"gastro_vision/utils"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	codes   []string
	codeErr error
	result  detection.Classification
}

func (f *fakeDetector) DecodeCodes(context.Context, []byte) ([]detection.Code, error) {
	if f.codeErr != nil {
		return nil, f.codeErr
	}
	out := make([]detection.Code, 0, len(f.codes))
	for _, c := range f.codes {
		out = append(out, detection.Code{Data: c, Polygon: []image.Point{{2, 2}, {20, 2}, {20, 20}, {2, 20}}})
	}
	return out, nil
}

func (f *fakeDetector) ClassifyFood(context.Context, []byte) detection.Classification {
	return f.result
}

type noopCreator struct{}

func (noopCreator) CreateFromPending(context.Context, model.PendingOrder) (*model.Order, error) {
	return &model.Order{}, nil
}

func frame(seq uint64) camera.Frame {
	return camera.Frame{Seq: seq, Timestamp: time.Unix(int64(seq), 0), Image: imaging.New(64, 48, color.Black)}
}

func newLoop(t *testing.T, d *fakeDetector) (*Loop, *gate.Gate, *Latest) {
	t.Helper()
	s := store.NewMemoryStore()
	require.NoError(t, s.CreateFood(context.Background(), &model.Food{FoodId: "pizza", Name: "pizza", Price: 12.5}))
	g := gate.New(noopCreator{})
	latest := &Latest{}
	return New(d, g, s, latest, Options{Threshold: 0.5}), g, latest
}

func TestProcess_ThresholdBoundary(t *testing.T) {
	d := &fakeDetector{codes: []string{"T1|W1"}, result: detection.Detected("pizza", 0.49)}
	loop, g, _ := newLoop(t, d)

	_, err := loop.Process(context.Background(), frame(1))
	require.NoError(t, err)
	_, ok := g.Peek()
	assert.False(t, ok)

	d.result = detection.Detected("pizza", 0.5)
	_, err = loop.Process(context.Background(), frame(2))
	require.NoError(t, err)
	got, ok := g.Peek()
	require.True(t, ok)
	assert.Equal(t, model.PendingOrder{
		TableId:    "T1",
		WaiterId:   "W1",
		FoodName:   "pizza",
		Price:      utils.Ptr(12.5),
		Confidence: 0.5,
		Timestamp:  time.Unix(2, 0),
	}, got)
}

func TestProcess_MalformedCodesNeverStage(t *testing.T) {
	for _, code := range []string{"T1|", "|W1", "T1", "T1|W1|X", ""} {
		t.Run(fmt.Sprintf("%q", code), func(t *testing.T) {
			d := &fakeDetector{codes: []string{code}, result: detection.Detected("pizza", 0.99)}
			loop, g, _ := newLoop(t, d)

			_, err := loop.Process(context.Background(), frame(1))
			require.NoError(t, err)
			_, ok := g.Peek()
			assert.False(t, ok)
		})
	}
}

func TestProcess_FullGateStillTracksFood(t *testing.T) {
	d := &fakeDetector{codes: []string{"T1|W1"}, result: detection.Detected("pizza", 0.9)}
	loop, g, latest := newLoop(t, d)

	_, err := loop.Process(context.Background(), frame(1))
	require.NoError(t, err)

	d.codes = []string{"T2|W2"}
	d.result = detection.Detected("sushi", 0.95)
	_, err = loop.Process(context.Background(), frame(2))
	require.NoError(t, err)

	got, _ := g.Peek()
	assert.Equal(t, "T1", got.TableId)
	assert.Equal(t, "sushi", loop.LastFood())
	assert.Equal(t, "T2|W2", loop.LastCode())
	food, conf := latest.Food()
	assert.Equal(t, "sushi", food)
	assert.Equal(t, 0.95, conf)
	assert.Equal(t, "T2|W2", latest.Code())
}

func TestProcess_UnavailableClassifierDegrades(t *testing.T) {
	d := &fakeDetector{codes: []string{"T1|W1"}, result: detection.Detected("pizza", 0.2)}
	loop, g, _ := newLoop(t, d)
	_, err := loop.Process(context.Background(), frame(1))
	require.NoError(t, err)

	d.result = detection.Unavailable()
	out, err := loop.Process(context.Background(), frame(2))
	require.NoError(t, err)
	_, err = imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, "pizza", loop.LastFood())
	_, ok := g.Peek()
	assert.False(t, ok)
}

func TestProcess_CodeDecoderDownStillClassifies(t *testing.T) {
	d := &fakeDetector{codeErr: utils.ErrCapabilityUnavailable, result: detection.Detected("pizza", 0.9)}
	loop, g, _ := newLoop(t, d)

	_, err := loop.Process(context.Background(), frame(1))
	require.NoError(t, err)
	assert.Equal(t, "pizza", loop.LastFood())
	_, ok := g.Peek()
	assert.False(t, ok)
}

func TestProcess_UnknownFoodStagesWithoutPrice(t *testing.T) {
	d := &fakeDetector{codes: []string{"T1|W1"}, result: detection.Detected("ramen", 0.8)}
	loop, g, _ := newLoop(t, d)

	_, err := loop.Process(context.Background(), frame(1))
	require.NoError(t, err)
	got, ok := g.Peek()
	require.True(t, ok)
	assert.Nil(t, got.Price)
}

type sliceSource struct {
	frames []camera.Frame
}

func (s *sliceSource) Next(context.Context) (camera.Frame, error) {
	if len(s.frames) == 0 {
		return camera.Frame{}, fmt.Errorf("test: %w", utils.ErrSourceExhausted)
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *sliceSource) Close() error { return nil }

func TestRun_StopsWhenSourceExhausted(t *testing.T) {
	loop, _, _ := newLoop(t, &fakeDetector{result: detection.Unavailable()})
	src := &sliceSource{frames: []camera.Frame{frame(1), frame(2), frame(3)}}

	var emitted int
	err := loop.Run(context.Background(), src, func([]byte) error {
		emitted++
		return nil
	})
	assert.True(t, errors.Is(err, utils.ErrSourceExhausted))
	assert.Equal(t, 3, emitted)
}

func TestRun_StopsWhenConsumerGone(t *testing.T) {
	loop, _, _ := newLoop(t, &fakeDetector{result: detection.Unavailable()})
	src := &sliceSource{frames: []camera.Frame{frame(1), frame(2), frame(3)}}

	var emitted int
	err := loop.Run(context.Background(), src, func([]byte) error {
		emitted++
		return errors.New("client closed")
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, emitted)
	assert.Len(t, src.frames, 2)
}
