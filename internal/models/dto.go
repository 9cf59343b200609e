package models

import "io"

// Data Transfer Objects

type CreateKaryaRequest struct {
	Title       string
	Prodi       string
	Nama        string
	NIM         string
	Description string
	UploadType  UploadType
	YoutubeURL  string

	// set only for file uploads
	FileName string
	File     io.Reader
	FileSize int64
}

type UpdateKaryaStatusRequest struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Nama     string `json:"nama"`
	NIM      string `json:"nim"`
	Prodi    string `json:"prodi"`
	Password string `json:"password"`
}

type LoginRequest struct {
	NIM      string `json:"nim"`
	Password string `json:"password"`
}

type KaryaResponse struct {
	Message string `json:"message"`
	Data    *Karya `json:"data,omitempty"`
}

type AccountResponse struct {
	Message string   `json:"message"`
	User    *Account `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp int64  `json:"timestamp"`
	Database  string `json:"database,omitempty"`
}
