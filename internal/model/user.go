package model

// User represents a credential record. Rows are created out-of-band (see
// cmd/seed); the API only ever reads them during login.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
}
