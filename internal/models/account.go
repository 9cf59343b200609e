package models

import (
	"time"
)

type Account struct {
	ID           string    `json:"id" db:"id"`
	NIM          string    `json:"nim" db:"nim"`
	Nama         string    `json:"nama" db:"nama"`
	Prodi        string    `json:"prodi" db:"prodi"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
