package domain

import "time"

// LeaseEventType represents the type of lease change event
type LeaseEventType string

const (
	LeaseEventCreated        LeaseEventType = "lease_created"
	LeaseEventVersionCreated LeaseEventType = "version_created"
	LeaseEventFactChanged    LeaseEventType = "fact_changed"
	LeaseEventNoticeWindow   LeaseEventType = "notice_window"
)

// LeaseEvent is the normalized change event published to JetStream after a
// successful write transaction commits. Publishing is best-effort and never
// rolls back the write it describes.
type LeaseEvent struct {
	EventID    string         `json:"event_id"`
	EventType  LeaseEventType `json:"event_type"`
	LeaseID    uint64         `json:"lease_id"`
	VersionID  *uint64        `json:"version_id,omitempty"`
	Subject    string         `json:"subject,omitempty"` // e.g. "rent_period", "option_window"
	SubjectID  *uint64        `json:"subject_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
