package pipeline

import "sync"

// Latest giữ giá trị mới nhất từ mọi luồng, phục vụ /last_qr và /last_food.
type Latest struct {
	mu         sync.RWMutex
	code       string
	food       string
	confidence float64
}

func (l *Latest) ObserveCode(code string) {
	l.mu.Lock()
	l.code = code
	l.mu.Unlock()
}

func (l *Latest) ObserveFood(label string, confidence float64) {
	l.mu.Lock()
	l.food, l.confidence = label, confidence
	l.mu.Unlock()
}

// Code trả chuỗi rỗng khi chưa đọc được mã nào.
func (l *Latest) Code() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.code
}

func (l *Latest) Food() (string, float64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.food, l.confidence
}
