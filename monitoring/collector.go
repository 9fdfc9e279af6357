package monitoring

import (
	"context"
	"log"

	"gastro_vision/constants"
	"gastro_vision/store"

	"github.com/robfig/cron/v3"
)

// Collector định kỳ đọc điểm phục vụ và trạng thái bàn từ store ra gauge.
type Collector struct {
	store store.Store
	cron  *cron.Cron
}

func NewCollector(s store.Store) *Collector {
	return &Collector{store: s}
}

func (c *Collector) Start(spec string) error {
	c.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	if _, err := c.cron.AddFunc(spec, func() { c.Collect(context.Background()) }); err != nil {
		return err
	}
	c.cron.Start()
	log.Printf("[CRON] metrics collector started (%s)", spec)
	return nil
}

func (c *Collector) Stop() {
	if c.cron != nil {
		<-c.cron.Stop().Done()
	}
}

func (c *Collector) Collect(ctx context.Context) {
	waiters, err := c.store.ListWaiters(ctx)
	if err != nil {
		log.Printf("[CRON] list waiters: %v", err)
		return
	}
	for _, w := range waiters {
		waiterPerformance.WithLabelValues(w.WaiterId).Set(float64(w.Performance))
		waiterInterest.WithLabelValues(w.WaiterId).Set(float64(w.InterestLevel))
	}

	tables, err := c.store.ListTables(ctx)
	if err != nil {
		log.Printf("[CRON] list tables: %v", err)
		return
	}
	counts := map[string]int{
		constants.TABLE_EMPTY:          0,
		constants.TABLE_OCCUPIED:       0,
		constants.TABLE_SERVED:         0,
		constants.TABLE_NEEDS_CLEANING: 0,
	}
	for _, t := range tables {
		counts[t.Status]++
	}
	for status, n := range counts {
		tablesByStatus.WithLabelValues(status).Set(float64(n))
	}
}
