package models

import "time"

// UploadedFile records a stored upload so the admin dashboard can audit disk
// usage and uploader activity.
type UploadedFile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UploaderID uint      `gorm:"index" json:"uploader_id"`
	FilePath   string    `gorm:"size:512;not null" json:"-"`
	URL        string    `gorm:"size:512;not null" json:"url"`
	MimeType   string    `gorm:"size:64" json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}
