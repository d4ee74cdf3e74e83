package alert

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	converter "github.com/you-humble/part-monitoring/internal/converter/telegram"
	"github.com/you-humble/part-monitoring/internal/model"
	"github.com/you-humble/part-monitoring/platform/logger"
)

type PartReader interface {
	Export(ctx context.Context, filter model.PartsFilter) ([]model.PartReport, error)
}

type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type service struct {
	parts    PartReader
	client   MessageSender
	interval time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	storage map[int64]struct{}
}

func NewAlertService(
	parts PartReader,
	client MessageSender,
	chatIDs []int64,
	interval time.Duration,
	now func() time.Time,
) *service {
	if now == nil {
		now = time.Now
	}

	storage := make(map[int64]struct{}, len(chatIDs))
	for _, id := range chatIDs {
		storage[id] = struct{}{}
	}

	return &service{
		parts:    parts,
		client:   client,
		interval: interval,
		now:      now,
		storage:  storage,
	}
}

func (svc *service) AddChatID(_ context.Context, chatID int64) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.storage[chatID] = struct{}{}
}

// NotifyDue sends one digest of Warning and MustReplace parts to every
// subscribed chat. Nothing is sent when no part needs attention.
func (svc *service) NotifyDue(ctx context.Context) error {
	const op = "alert.service.NotifyDue"
	log := logger.With(logger.String("op", op))

	chats := svc.chats()
	if len(chats) == 0 {
		log.Debug(ctx, "no subscribed chats")
		return nil
	}

	filter := model.NewPartsFilter()
	filter.Statuses = []model.Status{model.StatusWarning, model.StatusMustReplace}

	reports, err := svc.parts.Export(ctx, filter)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg, ok, err := converter.BuildReplacementDigest(svc.now(), reports)
	if err != nil {
		return fmt.Errorf("%s: build digest: %w", op, err)
	}
	if !ok {
		log.Debug(ctx, "nothing due")
		return nil
	}

	var errs []error
	for _, chatID := range chats {
		if err := svc.client.SendMessage(ctx, chatID, msg); err != nil {
			log.Warn(ctx, "digest not delivered", logger.Int64("chat_id", chatID), logger.ErrorF(err))
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	log.Info(ctx, "digest sent", logger.Int("chats", len(chats)), logger.Int("parts", len(reports)))

	return nil
}

// Run sends a digest every interval until ctx is done. Failed digests are
// logged and retried on the next tick.
func (svc *service) Run(ctx context.Context) error {
	ticker := time.NewTicker(svc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := svc.NotifyDue(ctx); err != nil {
				logger.Error(ctx, "replacement digest failed", logger.ErrorF(err))
			}
		}
	}
}

func (svc *service) chats() []int64 {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return slices.Sorted(maps.Keys(svc.storage))
}
