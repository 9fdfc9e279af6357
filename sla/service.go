package sla

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"gastro_vision/constants"
	"gastro_vision/model"
	"gastro_vision/monitoring"
	"gastro_vision/notify"
	"gastro_vision/store"
	"gastro_vision/utils"

	"github.com/jonboulle/clockwork"
)

// DelayWarning là payload của sự kiện waiter_delay_warning.
type DelayWarning struct {
	TableId  string `json:"table_id"`
	WaiterId string `json:"waiter_id"`
}

// Service điều khiển vòng đời trạng thái bàn và điểm phục vụ theo thời gian.
// mu tuần tự hoá thay đổi trạng thái với lần kiểm tra trễ, nên bàn đã được
// phục vụ không bao giờ bị phạt.
type Service struct {
	mu          sync.Mutex
	store       store.Store
	broadcaster notify.Broadcaster
	scheduler   Scheduler
	clock       clockwork.Clock
	delay       time.Duration
}

func NewService(s store.Store, b notify.Broadcaster, scheduler Scheduler, clock clockwork.Clock, delay time.Duration) *Service {
	return &Service{store: s, broadcaster: b, scheduler: scheduler, clock: clock, delay: delay}
}

// OnStatusChange ghi trạng thái mới của bàn kèm các mốc thời gian.
func (s *Service) OnStatusChange(ctx context.Context, tableId, status string) (*model.Table, error) {
	if !utils.IsValidValueOfConstant(status, constants.TABLE_STATUSES) {
		return nil, fmt.Errorf("status %q: %w", status, utils.ErrInvalidState)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.store.GetTable(ctx, tableId)
	if err != nil {
		return nil, err
	}

	// postgres lưu tới micro giây; check so sánh lại đúng giá trị đã ghi
	now := s.clock.Now().Truncate(time.Microsecond)
	fields := map[string]any{store.ColStatus: status}
	switch status {
	case constants.TABLE_OCCUPIED:
		fields[store.ColLastCustomerTime] = now
	case constants.TABLE_SERVED:
		fields[store.ColLastWaiterTime] = now
	}
	if err := s.store.UpdateTable(ctx, tableId, fields); err != nil {
		return nil, err
	}

	switch status {
	case constants.TABLE_OCCUPIED:
		if err := s.scheduler.Schedule(tableId, s.delay, s.checkTask(tableId, now)); err != nil {
			log.Printf("[SLA] schedule check for table %s: %v", tableId, err)
		}
	case constants.TABLE_SERVED:
		s.scheduler.Cancel(tableId)
		if table.WaiterId != nil {
			if err := s.store.AdjustWaiter(ctx, *table.WaiterId, 0, 1); err != nil {
				log.Printf("[SLA] reward waiter %s: %v", *table.WaiterId, err)
			}
		}
	default:
		s.scheduler.Cancel(tableId)
	}

	return s.store.GetTable(ctx, tableId)
}

// WaiterDetected: camera thấy người phục vụ tại bàn, gán họ cho bàn và đánh dấu đã phục vụ.
func (s *Service) WaiterDetected(ctx context.Context, tableId, waiterId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetWaiter(ctx, waiterId); err != nil {
		return err
	}
	err := s.store.UpdateTable(ctx, tableId, map[string]any{
		store.ColWaiterId:       waiterId,
		store.ColStatus:         constants.TABLE_SERVED,
		store.ColLastWaiterTime: s.clock.Now().Truncate(time.Microsecond),
	})
	if err != nil {
		return err
	}
	s.scheduler.Cancel(tableId)
	return s.store.AdjustWaiter(ctx, waiterId, 0, 1)
}

// Reset xoá đơn của bàn, đưa bàn về trống và bỏ lịch kiểm tra đang chờ.
func (s *Service) Reset(ctx context.Context, tableId string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetTable(ctx, tableId); err != nil {
		return 0, err
	}
	s.scheduler.Cancel(tableId)
	deleted, err := s.store.DeleteOrdersByTable(ctx, tableId)
	if err != nil {
		return 0, err
	}
	err = s.store.UpdateTable(ctx, tableId, map[string]any{
		store.ColStatus:   constants.TABLE_EMPTY,
		store.ColWaiterId: nil,
	})
	return deleted, err
}

// AutoAssign chia bàn (theo table_id) cho hai người phục vụ đầu tiên: hai bàn đầu cho người thứ nhất.
func (s *Service) AutoAssign(ctx context.Context) ([]model.TableAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables, err := s.store.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	waiters, err := s.store.ListWaiters(ctx)
	if err != nil {
		return nil, err
	}
	if len(waiters) < constants.MIN_WAITERS_FOR_ASSIGN || len(tables) < constants.MIN_TABLES_FOR_ASSIGN {
		return nil, fmt.Errorf("need at least %d waiters and %d tables: %w",
			constants.MIN_WAITERS_FOR_ASSIGN, constants.MIN_TABLES_FOR_ASSIGN, utils.ErrInvalidState)
	}

	assignments := make([]model.TableAssignment, 0, len(tables))
	for i, t := range tables {
		waiterId := waiters[1].WaiterId
		if i < 2 {
			waiterId = waiters[0].WaiterId
		}
		if err := s.store.UpdateTable(ctx, t.TableId, map[string]any{store.ColWaiterId: waiterId}); err != nil {
			return nil, err
		}
		assignments = append(assignments, model.TableAssignment{TableId: t.TableId, WaiterId: waiterId})
	}
	return assignments, nil
}

func (s *Service) checkTask(tableId string, customerTime time.Time) func() {
	return func() {
		s.check(context.Background(), tableId, customerTime)
	}
}

// check chạy khi hết hạn SLA; cảnh báo được phát sau khi nhả khoá.
func (s *Service) check(ctx context.Context, tableId string, customerTime time.Time) {
	warning, ok := s.penalizeIfUnserved(ctx, tableId, customerTime)
	if !ok {
		return
	}
	if err := s.broadcaster.Publish(ctx, constants.EVENT_WAITER_DELAY_WARNING, warning); err != nil {
		log.Printf("[SLA] broadcast delay warning: %v", err)
	}
}

// penalizeIfUnserved chỉ phạt nếu bàn vẫn occupied từ cùng lượt khách.
func (s *Service) penalizeIfUnserved(ctx context.Context, tableId string, customerTime time.Time) (DelayWarning, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.store.GetTable(ctx, tableId)
	if err != nil {
		log.Printf("[SLA] check table %s: %v", tableId, err)
		return DelayWarning{}, false
	}
	if table.Status != constants.TABLE_OCCUPIED || table.LastCustomerTime == nil || !table.LastCustomerTime.Equal(customerTime) {
		return DelayWarning{}, false
	}
	if table.WaiterId == nil {
		log.Printf("[SLA] table %s waited past SLA with no waiter assigned", tableId)
		return DelayWarning{}, false
	}

	waiterId := *table.WaiterId
	if err := s.store.AdjustWaiter(ctx, waiterId, -1, -1); err != nil {
		log.Printf("[SLA] penalize waiter %s: %v", waiterId, err)
		return DelayWarning{}, false
	}
	monitoring.TrackPenalty("sla")
	log.Printf("[SLA] table %s not served in %s, waiter %s penalized", tableId, s.delay, waiterId)
	return DelayWarning{TableId: tableId, WaiterId: waiterId}, true
}
