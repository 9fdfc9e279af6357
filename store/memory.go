package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gastro_vision/constants"
	"gastro_vision/model"
	"gastro_vision/utils"
)

var ErrDuplicate = utils.ErrDuplicate

// MemoryStore giữ toàn bộ dữ liệu trong RAM (STORE_DRIVER=memory, dùng cho demo và test).
type MemoryStore struct {
	mu      sync.RWMutex
	tables  map[string]model.Table
	waiters map[string]model.Waiter
	foods   map[string]model.Food
	orders  []model.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables:  make(map[string]model.Table),
		waiters: make(map[string]model.Waiter),
		foods:   make(map[string]model.Food),
	}
}

func (s *MemoryStore) CreateTable(_ context.Context, table *model.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[table.TableId]; ok {
		return fmt.Errorf("table %s: %w", table.TableId, ErrDuplicate)
	}
	if table.Status == "" {
		table.Status = constants.TABLE_EMPTY
	}
	s.tables[table.TableId] = cloneTable(*table)
	return nil
}

func (s *MemoryStore) ListTables(_ context.Context) ([]model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tables := make([]model.Table, 0, len(s.tables))
	for _, t := range s.tables {
		tables = append(tables, cloneTable(t))
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].TableId < tables[j].TableId })
	return tables, nil
}

func (s *MemoryStore) GetTable(_ context.Context, tableId string) (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[tableId]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", tableId, utils.ErrNotFound)
	}
	t = cloneTable(t)
	return &t, nil
}

func (s *MemoryStore) UpdateTable(_ context.Context, tableId string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[tableId]
	if !ok {
		return fmt.Errorf("table %s: %w", tableId, utils.ErrNotFound)
	}
	for col, value := range fields {
		switch col {
		case ColStatus:
			status, ok := value.(string)
			if !ok {
				return fmt.Errorf("column %s: unexpected %T", col, value)
			}
			t.Status = status
		case ColWaiterId:
			waiterId, err := stringPtrValue(value)
			if err != nil {
				return fmt.Errorf("column %s: %w", col, err)
			}
			t.WaiterId = waiterId
		case ColLastCustomerTime, ColLastWaiterTime:
			ts, err := timePtrValue(value)
			if err != nil {
				return fmt.Errorf("column %s: %w", col, err)
			}
			if col == ColLastCustomerTime {
				t.LastCustomerTime = ts
			} else {
				t.LastWaiterTime = ts
			}
		default:
			return fmt.Errorf("unknown table column %q", col)
		}
	}
	s.tables[tableId] = t
	return nil
}

func (s *MemoryStore) CreateWaiter(_ context.Context, waiter *model.Waiter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.waiters[waiter.WaiterId]; ok {
		return fmt.Errorf("waiter %s: %w", waiter.WaiterId, ErrDuplicate)
	}
	s.waiters[waiter.WaiterId] = *waiter
	return nil
}

func (s *MemoryStore) ListWaiters(_ context.Context) ([]model.Waiter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	waiters := make([]model.Waiter, 0, len(s.waiters))
	for _, w := range s.waiters {
		waiters = append(waiters, w)
	}
	sort.Slice(waiters, func(i, j int) bool { return waiters[i].WaiterId < waiters[j].WaiterId })
	return waiters, nil
}

func (s *MemoryStore) GetWaiter(_ context.Context, waiterId string) (*model.Waiter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.waiters[waiterId]
	if !ok {
		return nil, fmt.Errorf("waiter %s: %w", waiterId, utils.ErrNotFound)
	}
	return &w, nil
}

func (s *MemoryStore) AdjustWaiter(_ context.Context, waiterId string, performanceDelta, interestDelta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.waiters[waiterId]
	if !ok {
		return fmt.Errorf("waiter %s: %w", waiterId, utils.ErrNotFound)
	}
	w.Performance += performanceDelta
	w.InterestLevel += interestDelta
	s.waiters[waiterId] = w
	return nil
}

func (s *MemoryStore) SetWaiterInterest(_ context.Context, waiterId string, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.waiters[waiterId]
	if !ok {
		return fmt.Errorf("waiter %s: %w", waiterId, utils.ErrNotFound)
	}
	w.InterestLevel = level
	s.waiters[waiterId] = w
	return nil
}

func (s *MemoryStore) CreateFood(_ context.Context, food *model.Food) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.foods[food.FoodId]; ok {
		return fmt.Errorf("food %s: %w", food.FoodId, ErrDuplicate)
	}
	for _, f := range s.foods {
		if f.Name == food.Name {
			return fmt.Errorf("food name %s: %w", food.Name, ErrDuplicate)
		}
	}
	s.foods[food.FoodId] = *food
	return nil
}

func (s *MemoryStore) ListFoods(_ context.Context) ([]model.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	foods := make([]model.Food, 0, len(s.foods))
	for _, f := range s.foods {
		foods = append(foods, f)
	}
	sort.Slice(foods, func(i, j int) bool { return foods[i].Name < foods[j].Name })
	return foods, nil
}

func (s *MemoryStore) FindFoodById(_ context.Context, foodId string) (*model.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.foods[foodId]
	if !ok {
		return nil, fmt.Errorf("food %s: %w", foodId, utils.ErrNotFound)
	}
	return &f, nil
}

func (s *MemoryStore) FindFoodByName(_ context.Context, name string) (*model.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.foods {
		if f.Name == name {
			return &f, nil
		}
	}
	return nil, fmt.Errorf("food %s: %w", name, utils.ErrNotFound)
}

func (s *MemoryStore) CreateOrder(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.OrderId == order.OrderId {
			return fmt.Errorf("order %s: %w", order.OrderId, ErrDuplicate)
		}
	}
	s.orders = append(s.orders, *order)
	return nil
}

func (s *MemoryStore) ListOrders(_ context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []model.Order
	for _, o := range s.orders {
		if filter.TableId != nil && o.TableId != *filter.TableId {
			continue
		}
		if filter.WaiterId != nil && o.WaiterId != *filter.WaiterId {
			continue
		}
		if filter.FoodName != nil && o.FoodName != *filter.FoodName {
			continue
		}
		if filter.StartDate != nil && o.Timestamp.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && o.Timestamp.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, o)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp.Before(matched[j].Timestamp) })

	start, end := utils.PageBounds(len(matched), filter.Limit, filter.Page)
	return matched[start:end], int64(len(matched)), nil
}

func (s *MemoryStore) DeleteOrdersByTable(_ context.Context, tableId string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.orders[:0]
	var deleted int64
	for _, o := range s.orders {
		if o.TableId == tableId {
			deleted++
			continue
		}
		kept = append(kept, o)
	}
	s.orders = kept
	return deleted, nil
}

func (s *MemoryStore) Summary(_ context.Context) (*model.ReportSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	foodCounts := map[string]int64{}
	waiterCounts := map[string]int64{}
	tableTotals := map[string]float64{}
	for _, o := range s.orders {
		foodCounts[o.FoodName] += int64(o.Quantity)
		waiterCounts[o.WaiterId]++
		tableTotals[o.TableId] += o.Price
	}

	summary := &model.ReportSummary{TotalOrders: int64(len(s.orders))}
	for name, count := range foodCounts {
		summary.TopFoods = append(summary.TopFoods, model.FoodCount{FoodName: name, Count: count})
	}
	sort.Slice(summary.TopFoods, func(i, j int) bool {
		if summary.TopFoods[i].Count == summary.TopFoods[j].Count {
			return summary.TopFoods[i].FoodName < summary.TopFoods[j].FoodName
		}
		return summary.TopFoods[i].Count > summary.TopFoods[j].Count
	})
	if len(summary.TopFoods) > 5 {
		summary.TopFoods = summary.TopFoods[:5]
	}

	for waiterId, count := range waiterCounts {
		summary.WaiterPerformance = append(summary.WaiterPerformance, model.WaiterOrderCount{WaiterId: waiterId, Count: count})
	}
	sort.Slice(summary.WaiterPerformance, func(i, j int) bool {
		if summary.WaiterPerformance[i].Count == summary.WaiterPerformance[j].Count {
			return summary.WaiterPerformance[i].WaiterId < summary.WaiterPerformance[j].WaiterId
		}
		return summary.WaiterPerformance[i].Count > summary.WaiterPerformance[j].Count
	})

	for tableId, total := range tableTotals {
		summary.TableRevenue = append(summary.TableRevenue, model.TableRevenue{TableId: tableId, Total: total})
	}
	sort.Slice(summary.TableRevenue, func(i, j int) bool {
		return summary.TableRevenue[i].TableId < summary.TableRevenue[j].TableId
	})

	return summary, nil
}

func cloneTable(t model.Table) model.Table {
	if t.WaiterId != nil {
		t.WaiterId = utils.Ptr(*t.WaiterId)
	}
	if t.LastCustomerTime != nil {
		t.LastCustomerTime = utils.Ptr(*t.LastCustomerTime)
	}
	if t.LastWaiterTime != nil {
		t.LastWaiterTime = utils.Ptr(*t.LastWaiterTime)
	}
	return t
}

func stringPtrValue(value any) (*string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return utils.Ptr(v), nil
	case *string:
		if v == nil {
			return nil, nil
		}
		return utils.Ptr(*v), nil
	}
	return nil, fmt.Errorf("unexpected %T", value)
}

func timePtrValue(value any) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return utils.Ptr(v), nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return utils.Ptr(*v), nil
	}
	return nil, fmt.Errorf("unexpected %T", value)
}
