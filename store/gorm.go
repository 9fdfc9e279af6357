package store

import (
	"context"
	"errors"
	"fmt"

	"gastro_vision/model"
	"gastro_vision/utils"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, utils.ErrNotFound)
	}
	return err
}

// duplicate cần gorm.Config{TranslateError: true}.
func duplicate(err error, what, id string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s %s: %w", what, id, utils.ErrDuplicate)
	}
	return err
}

func (s *GormStore) CreateTable(ctx context.Context, table *model.Table) error {
	return duplicate(s.db.WithContext(ctx).Create(table).Error, "table", table.TableId)
}

func (s *GormStore) ListTables(ctx context.Context) ([]model.Table, error) {
	var tables []model.Table
	err := s.db.WithContext(ctx).Order("table_id asc").Find(&tables).Error
	return tables, err
}

func (s *GormStore) GetTable(ctx context.Context, tableId string) (*model.Table, error) {
	var table model.Table
	if err := s.db.WithContext(ctx).Where("table_id = ?", tableId).First(&table).Error; err != nil {
		return nil, notFound(err, "table", tableId)
	}
	return &table, nil
}

func (s *GormStore) UpdateTable(ctx context.Context, tableId string, fields map[string]any) error {
	result := s.db.WithContext(ctx).Model(&model.Table{}).
		Where("table_id = ?", tableId).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("table %s: %w", tableId, utils.ErrNotFound)
	}
	return nil
}

func (s *GormStore) CreateWaiter(ctx context.Context, waiter *model.Waiter) error {
	return duplicate(s.db.WithContext(ctx).Create(waiter).Error, "waiter", waiter.WaiterId)
}

func (s *GormStore) ListWaiters(ctx context.Context) ([]model.Waiter, error) {
	var waiters []model.Waiter
	err := s.db.WithContext(ctx).Order("waiter_id asc").Find(&waiters).Error
	return waiters, err
}

func (s *GormStore) GetWaiter(ctx context.Context, waiterId string) (*model.Waiter, error) {
	var waiter model.Waiter
	if err := s.db.WithContext(ctx).Where("waiter_id = ?", waiterId).First(&waiter).Error; err != nil {
		return nil, notFound(err, "waiter", waiterId)
	}
	return &waiter, nil
}

// AdjustWaiter cộng dồn ngay trong câu UPDATE để không mất cập nhật khi chạy song song.
func (s *GormStore) AdjustWaiter(ctx context.Context, waiterId string, performanceDelta, interestDelta int) error {
	result := s.db.WithContext(ctx).Model(&model.Waiter{}).
		Where("waiter_id = ?", waiterId).
		UpdateColumns(map[string]any{
			"performance":    gorm.Expr("performance + ?", performanceDelta),
			"interest_level": gorm.Expr("interest_level + ?", interestDelta),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("waiter %s: %w", waiterId, utils.ErrNotFound)
	}
	return nil
}

func (s *GormStore) SetWaiterInterest(ctx context.Context, waiterId string, level int) error {
	result := s.db.WithContext(ctx).Model(&model.Waiter{}).
		Where("waiter_id = ?", waiterId).
		UpdateColumn("interest_level", level)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("waiter %s: %w", waiterId, utils.ErrNotFound)
	}
	return nil
}

func (s *GormStore) CreateFood(ctx context.Context, food *model.Food) error {
	return duplicate(s.db.WithContext(ctx).Create(food).Error, "food", food.FoodId)
}

func (s *GormStore) ListFoods(ctx context.Context) ([]model.Food, error) {
	var foods []model.Food
	err := s.db.WithContext(ctx).Order("name asc").Find(&foods).Error
	return foods, err
}

func (s *GormStore) FindFoodById(ctx context.Context, foodId string) (*model.Food, error) {
	var food model.Food
	if err := s.db.WithContext(ctx).Where("food_id = ?", foodId).First(&food).Error; err != nil {
		return nil, notFound(err, "food", foodId)
	}
	return &food, nil
}

func (s *GormStore) FindFoodByName(ctx context.Context, name string) (*model.Food, error) {
	var food model.Food
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&food).Error; err != nil {
		return nil, notFound(err, "food", name)
	}
	return &food, nil
}

func (s *GormStore) CreateOrder(ctx context.Context, order *model.Order) error {
	return duplicate(s.db.WithContext(ctx).Create(order).Error, "order", order.OrderId)
}

func (s *GormStore) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.Order{})
	if filter.TableId != nil {
		db = db.Where("table_id = ?", *filter.TableId)
	}
	if filter.WaiterId != nil {
		db = db.Where("waiter_id = ?", *filter.WaiterId)
	}
	if filter.FoodName != nil {
		db = db.Where("food_name = ?", *filter.FoodName)
	}
	if filter.StartDate != nil {
		db = db.Where("timestamp >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		db = db.Where("timestamp <= ?", *filter.EndDate)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	db = utils.ApplyPagination(db.Order("timestamp asc"), filter.Limit, filter.Page)
	if err := db.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *GormStore) DeleteOrdersByTable(ctx context.Context, tableId string) (int64, error) {
	result := s.db.WithContext(ctx).Where("table_id = ?", tableId).Delete(&model.Order{})
	return result.RowsAffected, result.Error
}

func (s *GormStore) Summary(ctx context.Context) (*model.ReportSummary, error) {
	db := s.db.WithContext(ctx)
	summary := &model.ReportSummary{}

	if err := db.Model(&model.Order{}).Count(&summary.TotalOrders).Error; err != nil {
		return nil, err
	}

	// Top 5 món được gọi nhiều nhất (theo tổng số lượng)
	if err := db.Model(&model.Order{}).
		Select("food_name, SUM(quantity) AS count").
		Group("food_name").
		Order("count desc").
		Limit(5).
		Scan(&summary.TopFoods).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Order{}).
		Select("waiter_id, COUNT(*) AS count").
		Group("waiter_id").
		Order("count desc").
		Scan(&summary.WaiterPerformance).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Order{}).
		Select("table_id, SUM(price) AS total").
		Group("table_id").
		Order("table_id asc").
		Scan(&summary.TableRevenue).Error; err != nil {
		return nil, err
	}

	return summary, nil
}
