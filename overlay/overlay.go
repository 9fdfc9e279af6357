package overlay

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	Green  = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	Red    = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
)

// PlaceholderText hiện khi không phân loại được món.
const PlaceholderText = "Food: ?"

// Canvas vẽ chú thích lên bản sao của khung hình, không đụng tới ảnh gốc.
type Canvas struct {
	img *image.NRGBA
}

func New(src image.Image) *Canvas {
	return &Canvas{img: imaging.Clone(src)}
}

func (c *Canvas) Image() image.Image {
	return c.img
}

// Polygon vẽ đường bao khép kín qua các đỉnh.
func (c *Canvas) Polygon(points []image.Point, col color.Color) {
	if len(points) < 2 {
		return
	}
	for i := range points {
		next := points[(i+1)%len(points)]
		c.line(points[i], next, col)
	}
}

func (c *Canvas) Box(r image.Rectangle, col color.Color) {
	c.Polygon([]image.Point{r.Min, {X: r.Max.X, Y: r.Min.Y}, r.Max, {X: r.Min.X, Y: r.Max.Y}}, col)
}

// Text viết chuỗi với baseline tại (x, y).
func (c *Canvas) Text(x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func (c *Canvas) Placeholder() {
	c.Text(10, 30, PlaceholderText, Red)
}

func (c *Canvas) JPEG(quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, c.img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// line: Bresenham, nét dày 2px.
func (c *Canvas) line(a, b image.Point, col color.Color) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	err := dx + dy
	x, y := a.X, a.Y
	for {
		c.img.Set(x, y, col)
		c.img.Set(x+1, y, col)
		c.img.Set(x, y+1, col)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
