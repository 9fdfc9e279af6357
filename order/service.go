package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"gastro_vision/constants"
	"gastro_vision/model"
	"gastro_vision/monitoring"
	"gastro_vision/notify"
	"gastro_vision/store"
	"gastro_vision/utils"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

const (
	SourceManual  = "manual"
	SourceCamera  = "camera"
	SourceConfirm = "confirm"
)

// Request mô tả một đơn cần tạo; món được tìm theo FoodId, nếu trống thì theo FoodName.
type Request struct {
	TableId  string
	WaiterId string
	FoodId   string
	FoodName string
	Quantity int
	Source   string
}

type Options struct {
	// PenaltyEnabled bật đường phạt phụ lúc tạo đơn.
	PenaltyEnabled bool
	PenaltyAfter   time.Duration
}

type Service struct {
	store       store.Store
	broadcaster notify.Broadcaster
	clock       clockwork.Clock
	opts        Options
}

func NewService(s store.Store, b notify.Broadcaster, clock clockwork.Clock, opts Options) *Service {
	return &Service{store: s, broadcaster: b, clock: clock, opts: opts}
}

func (s *Service) resolveFood(ctx context.Context, req Request) (*model.Food, error) {
	if req.FoodId != "" {
		return s.store.FindFoodById(ctx, req.FoodId)
	}
	if req.FoodName != "" {
		return s.store.FindFoodByName(ctx, req.FoodName)
	}
	return nil, fmt.Errorf("food: %w", utils.ErrNotFound)
}

// Create lưu đơn, cộng điểm phục vụ, xét phạt phụ rồi phát order_update.
// Món, bàn và người phục vụ đều được kiểm tra trước khi ghi đơn.
func (s *Service) Create(ctx context.Context, req Request) (*model.Order, error) {
	food, err := s.resolveFood(ctx, req)
	if err != nil {
		return nil, err
	}
	table, err := s.store.GetTable(ctx, req.TableId)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", req.TableId, err)
	}
	if _, err := s.store.GetWaiter(ctx, req.WaiterId); err != nil {
		return nil, fmt.Errorf("waiter %s: %w", req.WaiterId, err)
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	total := decimal.NewFromFloat(food.Price).Mul(decimal.NewFromInt(int64(req.Quantity)))
	price, _ := total.Round(2).Float64()

	now := s.clock.Now().Truncate(time.Microsecond)
	order := &model.Order{
		OrderId:   uuid.NewString(),
		TableId:   req.TableId,
		WaiterId:  req.WaiterId,
		FoodId:    food.FoodId,
		FoodName:  food.Name,
		Quantity:  req.Quantity,
		Price:     price,
		Timestamp: now,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if err := s.store.AdjustWaiter(ctx, order.WaiterId, 1, 0); err != nil {
		return nil, fmt.Errorf("reward waiter %s: %w", order.WaiterId, err)
	}
	if err := s.recordService(ctx, table, order, now); err != nil {
		log.Printf("[ORDER] record service on table %s: %v", order.TableId, err)
	}

	source := req.Source
	if source == "" {
		source = SourceManual
	}
	monitoring.TrackOrder(source)
	if err := s.broadcaster.Publish(ctx, constants.EVENT_ORDER_UPDATE, order); err != nil {
		log.Printf("[ORDER] broadcast %s: %v", order.OrderId, err)
	}
	return order, nil
}

// recordService: khi khách đang chờ, đơn hàng được tính là lượt phục vụ và
// last_waiter_time được ghi lại. Nếu khách đã chờ quá PenaltyAfter kể từ lúc
// vào bàn thì người phục vụ đơn bị trừ 1 điểm performance.
func (s *Service) recordService(ctx context.Context, table *model.Table, order *model.Order, now time.Time) error {
	if !table.CustomerWaiting() {
		return nil
	}
	if s.opts.PenaltyEnabled && now.Sub(*table.LastCustomerTime) > s.opts.PenaltyAfter {
		if err := s.store.AdjustWaiter(ctx, order.WaiterId, -1, 0); err != nil {
			return fmt.Errorf("penalize waiter %s: %w", order.WaiterId, err)
		}
		monitoring.TrackPenalty("order")
		log.Printf("[SLA] late order on table %s, waiter %s performance -1", order.TableId, order.WaiterId)
	}
	return s.store.UpdateTable(ctx, order.TableId, map[string]any{store.ColLastWaiterTime: now})
}

// CreateFromPending tạo đơn một phần từ ứng viên camera đã được xác nhận.
func (s *Service) CreateFromPending(ctx context.Context, pending model.PendingOrder) (*model.Order, error) {
	return s.Create(ctx, Request{
		TableId:  pending.TableId,
		WaiterId: pending.WaiterId,
		FoodName: pending.FoodName,
		Quantity: 1,
		Source:   SourceConfirm,
	})
}
