package gate

import (
	"context"
	"fmt"
	"log"
	"sync"

	"gastro_vision/model"
	"gastro_vision/utils"
)

// OrderCreator biến ứng viên đã xác nhận thành đơn hàng.
type OrderCreator interface {
	CreateFromPending(ctx context.Context, pending model.PendingOrder) (*model.Order, error)
}

// Gate giữ tối đa một đơn chờ xác nhận; mọi thao tác đều đi qua một mutex.
type Gate struct {
	mu      sync.Mutex
	slot    *model.PendingOrder
	creator OrderCreator
}

func New(creator OrderCreator) *Gate {
	return &Gate{creator: creator}
}

// TryStage chỉ nhận ứng viên khi slot trống; ứng viên đến sau bị bỏ.
func (g *Gate) TryStage(candidate model.PendingOrder) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.slot != nil {
		return false
	}
	g.slot = &candidate
	log.Printf("[GATE] staged table=%s waiter=%s food=%s conf=%.2f",
		candidate.TableId, candidate.WaiterId, candidate.FoodName, candidate.Confidence)
	return true
}

func (g *Gate) Peek() (model.PendingOrder, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.slot == nil {
		return model.PendingOrder{}, false
	}
	return *g.slot, true
}

// Empty dùng cho vòng xử lý khung hình, tránh tra cứu thừa khi slot đã có đơn.
func (g *Gate) Empty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.slot == nil
}

// Confirm lấy và xoá slot trong cùng một vùng khoá rồi mới tạo đơn.
// Slot đã xoá thì không trả lại, kể cả khi tạo đơn lỗi.
func (g *Gate) Confirm(ctx context.Context) (*model.Order, error) {
	g.mu.Lock()
	if !g.slot.Complete() {
		g.mu.Unlock()
		return nil, fmt.Errorf("confirm: %w", utils.ErrInvalidState)
	}
	pending := *g.slot
	g.slot = nil
	g.mu.Unlock()

	order, err := g.creator.CreateFromPending(ctx, pending)
	if err != nil {
		log.Printf("[GATE] confirm table=%s food=%s failed: %v", pending.TableId, pending.FoodName, err)
		return nil, err
	}
	return order, nil
}

// Reject xoá slot; gọi trên slot trống không phải lỗi.
func (g *Gate) Reject() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.slot != nil {
		log.Printf("[GATE] rejected table=%s food=%s", g.slot.TableId, g.slot.FoodName)
	}
	g.slot = nil
}
