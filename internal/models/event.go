package models

type KaryaEventType string

const (
	KaryaEventCreated       KaryaEventType = "karya.created"
	KaryaEventStatusUpdated KaryaEventType = "karya.status_updated"
	KaryaEventDeleted       KaryaEventType = "karya.deleted"
)

type KaryaEvent struct {
	Type      KaryaEventType `json:"type"`
	KaryaID   string         `json:"karya_id"`
	Prodi     string         `json:"prodi,omitempty"`
	Status    string         `json:"status,omitempty"`
	Timestamp int64          `json:"timestamp"`
}
