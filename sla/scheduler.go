package sla

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// Scheduler chạy một tác vụ trễ duy nhất cho mỗi bàn; lịch mới thay thế lịch cũ.
type Scheduler interface {
	Schedule(tableId string, delay time.Duration, task func()) error
	Cancel(tableId string)
	Shutdown() error
}

// logBridge đưa log nội bộ của gocron về log chuẩn.
type logBridge struct{}

func (logBridge) Debug(string, ...any) {}

func (logBridge) Info(msg string, args ...any) {
	log.Printf("[CRON] %s %v", msg, args)
}

func (logBridge) Warn(msg string, args ...any) {
	log.Printf("[CRON] WARN %s %v", msg, args)
}

func (logBridge) Error(msg string, args ...any) {
	log.Printf("[CRON] ERROR %s %v", msg, args)
}

type GocronScheduler struct {
	s     gocron.Scheduler
	clock clockwork.Clock
}

func NewGocronScheduler(clock clockwork.Clock) (*GocronScheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLogger(logBridge{}),
	)
	if err != nil {
		return nil, err
	}
	s.Start()
	return &GocronScheduler{s: s, clock: clock}, nil
}

func tag(tableId string) string {
	return "table:" + tableId
}

func (g *GocronScheduler) Schedule(tableId string, delay time.Duration, task func()) error {
	g.s.RemoveByTags(tag(tableId))
	_, err := g.s.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(g.clock.Now().Add(delay))),
		gocron.NewTask(task),
		gocron.WithTags(tag(tableId)),
		gocron.WithName(fmt.Sprintf("sla-check-%s", tableId)),
	)
	return err
}

func (g *GocronScheduler) Cancel(tableId string) {
	g.s.RemoveByTags(tag(tableId))
}

func (g *GocronScheduler) Shutdown() error {
	return g.s.Shutdown()
}
