package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is a saved password as stored. Sealed holds the encrypted
// password; the plaintext never reaches a repository.
type HistoryEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ClientID  uuid.UUID `json:"client_id" db:"client_id"`
	Sealed    string    `json:"sealed" db:"sealed_password"`
	Strength  int       `json:"strength" db:"strength"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HistoryItem is a history entry as returned to the client that saved it.
// Password is only set when the client asks to reveal it.
type HistoryItem struct {
	ID        uuid.UUID `json:"id"`
	Password  string    `json:"password,omitempty"`
	Masked    string    `json:"masked"`
	Strength  int       `json:"strength"`
	Label     string    `json:"label"`
	Timestamp time.Time `json:"timestamp"`
}
