package models

import (
	"time"
)

type Karya struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Prodi       string      `json:"prodi" db:"prodi"`
	Nama        string      `json:"nama" db:"nama"`
	NIM         string      `json:"nim" db:"nim"`
	Description string      `json:"description" db:"description"`
	UploadType  UploadType  `json:"upload_type" db:"upload_type"`
	FilePath    *string     `json:"file_path" db:"file_path"`
	YoutubeURL  *string     `json:"youtube_url" db:"youtube_url"`
	Status      KaryaStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

type KaryaFilter struct {
	Prodi  string
	Status string
}

type UploadType string

const (
	UploadTypeFile    UploadType = "file"
	UploadTypeYoutube UploadType = "youtube"
)

func (ut UploadType) IsValid() bool {
	return ut == UploadTypeFile || ut == UploadTypeYoutube
}

func (ut UploadType) String() string {
	return string(ut)
}

type KaryaStatus string

const (
	KaryaStatusPending  KaryaStatus = "Pending"
	KaryaStatusApproved KaryaStatus = "Approved"
	KaryaStatusRejected KaryaStatus = "Rejected"
)

// IsModeration reports whether the status can be set by a moderator.
// Pending is only ever assigned at creation.
func (ks KaryaStatus) IsModeration() bool {
	return ks == KaryaStatusApproved || ks == KaryaStatusRejected
}

func (ks KaryaStatus) String() string {
	return string(ks)
}
