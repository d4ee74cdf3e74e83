package partproducer

import (
	"context"
	"fmt"

	"github.com/you-humble/part-monitoring/internal/model"
	"github.com/you-humble/part-monitoring/platform/kafka"
)

type Converter interface {
	PartEventToPayload(ev model.PartEvent) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
}

func NewPartProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

// Send publishes ev keyed by part number. Import events carry no key.
func (s *service) Send(ctx context.Context, ev model.PartEvent) error {
	payload, err := s.conv.PartEventToPayload(ev)
	if err != nil {
		return fmt.Errorf("converter part_event_to_payload error: %w", err)
	}

	if err := s.producer.Send(ctx, []byte(ev.PartNumber), payload); err != nil {
		return fmt.Errorf("producer to part events topic error: %w", err)
	}

	return nil
}
