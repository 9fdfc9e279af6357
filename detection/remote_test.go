package detection

import (
	"context"
	"net"
	"testing"
	"time"

	"gastro_vision/constants"
	"gastro_vision/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startInferenceService(t *testing.T, label string, confidence float64) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/classify", func(c *fiber.Ctx) error {
		if len(c.Body()) == 0 {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.JSON(fiber.Map{"label": label, "confidence": confidence})
	})
	app.Post("/decode", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"codes": []fiber.Map{
			{"data": "T1|W1", "polygon": [][2]int{{1, 1}, {10, 1}, {10, 10}, {1, 10}}},
		}})
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestRemoteDetector_ClassifyAndDecode(t *testing.T) {
	base := startInferenceService(t, "pizza", 0.91)
	d := NewRemoteDetector(base, 2*time.Second)
	require.True(t, d.Probe())

	result := d.ClassifyFood(context.Background(), []byte{0xff, 0xd8})
	assert.True(t, result.Available())
	assert.Equal(t, "pizza", result.Label)
	assert.InDelta(t, 0.91, result.Confidence, 1e-9)

	codes, err := d.DecodeCodes(context.Background(), []byte{0xff, 0xd8})
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "T1|W1", codes[0].Data)
	assert.Len(t, codes[0].Polygon, 4)
}

func TestRemoteDetector_UnknownLabelDegrades(t *testing.T) {
	base := startInferenceService(t, "not_a_food", 0.99)
	d := NewRemoteDetector(base, 2*time.Second)
	require.True(t, d.Probe())

	result := d.ClassifyFood(context.Background(), []byte{1})
	assert.True(t, result.Available())
	assert.Equal(t, constants.UNKNOWN_FOOD, result.Label)
	assert.Zero(t, result.Confidence)
}

func TestRemoteDetector_UnavailableWhenProbeFails(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	d := NewRemoteDetector("http://"+addr, 200*time.Millisecond)
	assert.False(t, d.Probe())

	result := d.ClassifyFood(context.Background(), []byte{1})
	assert.False(t, result.Available())
	assert.Equal(t, constants.UNKNOWN_FOOD, result.Label)
	assert.Zero(t, result.Confidence)

	_, err = d.DecodeCodes(context.Background(), []byte{1})
	assert.ErrorIs(t, err, utils.ErrCapabilityUnavailable)
}

func TestClassificationClampsConfidence(t *testing.T) {
	assert.Equal(t, 1.0, Detected("pizza", 1.7).Confidence)
	assert.Equal(t, 0.0, Detected("pizza", -0.2).Confidence)
	assert.False(t, Unavailable().Available())
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "salad", Category("caesar_salad"))
	assert.Equal(t, "soup", Category("miso_soup"))
	assert.Equal(t, "dessert", Category("carrot_cake"))
	assert.Equal(t, "grill", Category("pork_chop"))
	assert.Equal(t, "stew", Category("chicken_curry"))
	assert.Equal(t, "other", Category("pizza"))
	assert.Len(t, FoodClasses, 101)
}
