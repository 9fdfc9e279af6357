package camera

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gastro_vision/utils"

	"github.com/disintegration/imaging"
)

var frameExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// DirSource phát lại các ảnh trong một thư mục như một camera (dùng khi không có CAMERA_URL).
type DirSource struct {
	files    []string
	loop     bool
	interval time.Duration

	mu     sync.Mutex
	pos    int
	seq    uint64
	last   time.Time
	closed bool
}

// NewDirSource đọc danh sách ảnh theo thứ tự tên; fps <= 0 thì không giới hạn tốc độ.
func NewDirSource(dir string, fps float64, loop bool) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !frameExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no frames in %s", dir)
	}
	sort.Strings(files)

	var interval time.Duration
	if fps > 0 {
		interval = time.Duration(float64(time.Second) / fps)
	}
	return &DirSource{files: files, loop: loop, interval: interval}, nil
}

func (s *DirSource) Next(ctx context.Context) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Frame{}, fmt.Errorf("dir source: %w: closed", utils.ErrSourceExhausted)
	}
	if s.pos >= len(s.files) {
		if !s.loop {
			return Frame{}, fmt.Errorf("dir source: %w: end of frames", utils.ErrSourceExhausted)
		}
		s.pos = 0
	}

	if s.interval > 0 && !s.last.IsZero() {
		if wait := s.interval - time.Since(s.last); wait > 0 {
			select {
			case <-ctx.Done():
				return Frame{}, ctx.Err()
			case <-time.After(wait):
			}
		}
	}

	path := s.files[s.pos]
	s.pos++
	data, err := os.ReadFile(path)
	if err != nil {
		return Frame{}, fmt.Errorf("dir source %s: %w: %v", path, utils.ErrSourceExhausted, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Frame{}, fmt.Errorf("dir source %s: %w: %v", path, utils.ErrSourceExhausted, err)
	}
	raw := data
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".jpg" && ext != ".jpeg" {
		if raw, err = toJPEG(img); err != nil {
			return Frame{}, err
		}
	}

	s.seq++
	s.last = time.Now()
	return Frame{Seq: s.seq, Timestamp: s.last, Image: img, Raw: raw}, nil
}

func (s *DirSource) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
