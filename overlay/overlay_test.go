package overlay

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvas_DoesNotMutateSource(t *testing.T) {
	src := imaging.New(40, 40, color.Black)
	c := New(src)
	c.Box(image.Rect(5, 5, 30, 30), Green)

	assert.Equal(t, color.NRGBA{A: 255}, src.NRGBAAt(5, 5))
	assert.Equal(t, Green, c.Image().(*image.NRGBA).NRGBAAt(5, 5))
	assert.Equal(t, Green, c.Image().(*image.NRGBA).NRGBAAt(30, 30))
}

func TestCanvas_TextAndPlaceholder(t *testing.T) {
	c := New(imaging.New(120, 40, color.Black))
	c.Placeholder()

	img := c.Image().(*image.NRGBA)
	var lit int
	for y := 15; y < 35; y++ {
		for x := 10; x < 60; x++ {
			if img.NRGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0)
}

func TestCanvas_JPEG(t *testing.T) {
	c := New(imaging.New(20, 10, color.White))
	c.Polygon([]image.Point{{1, 1}, {18, 1}, {9, 8}}, Yellow)

	data, err := c.JPEG(80)
	require.NoError(t, err)
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
}

func TestCanvas_PolygonNeedsTwoPoints(t *testing.T) {
	c := New(imaging.New(10, 10, color.Black))
	c.Polygon([]image.Point{{2, 2}}, Red)
	assert.Equal(t, color.NRGBA{A: 255}, c.Image().(*image.NRGBA).NRGBAAt(2, 2))
}
