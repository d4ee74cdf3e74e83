package model

import (
	"time"

	"github.com/google/uuid"
)

type PartEventType string

const (
	PartEventCreated  PartEventType = "part.created"
	PartEventUpdated  PartEventType = "part.updated"
	PartEventDeleted  PartEventType = "part.deleted"
	PartEventReplaced PartEventType = "part.replaced"
	PartEventImported PartEventType = "parts.imported"
)

type PartEvent struct {
	ID         uuid.UUID
	Type       PartEventType
	PartNumber string
	Part       *Part
	Imported   int
	Mode       ImportMode
	OccurredAt time.Time
}
