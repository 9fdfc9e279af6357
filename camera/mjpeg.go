package camera

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"gastro_vision/utils"

	"github.com/disintegration/imaging"
)

// MJPEGSource đọc camera IP phát multipart/x-mixed-replace.
type MJPEGSource struct {
	url    string
	client *http.Client

	mu     sync.Mutex
	body   io.ReadCloser
	reader *multipart.Reader
	seq    uint64
	failed error
}

func NewMJPEGSource(url string) *MJPEGSource {
	return &MJPEGSource{url: url, client: &http.Client{}}
}

func (s *MJPEGSource) connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("camera responded %d", resp.StatusCode)
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		resp.Body.Close()
		return fmt.Errorf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}
	boundary := strings.TrimPrefix(params["boundary"], "--")
	if boundary == "" {
		resp.Body.Close()
		return fmt.Errorf("missing multipart boundary")
	}

	s.body = resp.Body
	s.reader = multipart.NewReader(resp.Body, boundary)
	log.Printf("[CAMERA] connected to %s", s.url)
	return nil
}

func (s *MJPEGSource) Next(ctx context.Context) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed != nil {
		return Frame{}, s.failed
	}
	if s.reader == nil {
		if err := s.connect(ctx); err != nil {
			return Frame{}, s.fail(err)
		}
	}

	part, err := s.reader.NextPart()
	if err != nil {
		return Frame{}, s.fail(err)
	}
	raw, err := io.ReadAll(part)
	part.Close()
	if err != nil {
		return Frame{}, s.fail(err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return Frame{}, s.fail(fmt.Errorf("decode frame: %w", err))
	}

	s.seq++
	return Frame{Seq: s.seq, Timestamp: time.Now(), Image: img, Raw: raw}, nil
}

func (s *MJPEGSource) fail(err error) error {
	s.failed = fmt.Errorf("mjpeg %s: %w: %v", s.url, utils.ErrSourceExhausted, err)
	if s.body != nil {
		s.body.Close()
	}
	return s.failed
}

func (s *MJPEGSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed == nil {
		s.failed = fmt.Errorf("mjpeg %s: %w: closed", s.url, utils.ErrSourceExhausted)
	}
	if s.body != nil {
		return s.body.Close()
	}
	return nil
}
