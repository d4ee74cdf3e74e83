package converter

import (
	"encoding/json"
	"fmt"

	"github.com/you-humble/part-monitoring/internal/model"
	partsv1 "github.com/you-humble/part-monitoring/pkg/api/parts/v1"
)

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) PartEventToPayload(ev model.PartEvent) ([]byte, error) {
	msg := partsv1.PartEvent{
		EventID:    ev.ID.String(),
		Type:       string(ev.Type),
		PartNumber: ev.PartNumber,
		Mode:       string(ev.Mode),
		OccurredAt: ev.OccurredAt.UTC(),
	}
	if ev.Part != nil {
		p := PartToAPI(*ev.Part)
		msg.Part = &p
	}
	if ev.Type == model.PartEventImported {
		imported := ev.Imported
		msg.Imported = &imported
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal part event: %w", err)
	}

	return payload, nil
}
