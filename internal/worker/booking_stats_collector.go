package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Florddev/match-room-sub001/internal/domain/booking"
	"github.com/Florddev/match-room-sub001/internal/pkg/logger"
	"github.com/Florddev/match-room-sub001/internal/pkg/metrics"
)

// BookingCounter は状態別の予約数を集計するインターフェース
type BookingCounter interface {
	CountByStatus(ctx context.Context) (map[booking.Status]int, error)
}

// BookingStatsCollector は予約数のゲージを定期的に更新するワーカー
// 参照のみ行い、予約や交渉の状態は変更しない
type BookingStatsCollector struct {
	bookingRepo BookingCounter
	metrics     *metrics.Metrics
	interval    time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
}

// NewBookingStatsCollector は新しいコレクターを作成
func NewBookingStatsCollector(br BookingCounter, m *metrics.Metrics, interval time.Duration) *BookingStatsCollector {
	return &BookingStatsCollector{
		bookingRepo: br,
		metrics:     m,
		interval:    interval,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start はコレクターを開始
func (c *BookingStatsCollector) Start(ctx context.Context) {
	logger.Info("予約統計コレクター開始", zap.Duration("interval", c.interval))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	// 起動直後に一度更新する
	c.collect(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("予約統計コレクター停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("予約統計コレクター停止（シグナル受信）")
			return
		case <-ticker.C:
			c.collect(ctx)
		}
	}
}

// Stop はコレクターを停止
func (c *BookingStatsCollector) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// collect は状態別の予約数を取得してゲージに反映する
func (c *BookingStatsCollector) collect(ctx context.Context) {
	log := logger.Get()
	log.Debug("予約統計の収集開始")

	counts, err := c.bookingRepo.CountByStatus(ctx)
	if err != nil {
		log.Error("予約統計の収集失敗", zap.Error(err))
		return
	}

	for _, status := range []booking.Status{booking.StatusPending, booking.StatusPaid} {
		c.metrics.ActiveBookings.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}
