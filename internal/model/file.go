package model

import "time"

type FileStatus string

const (
	FileStatusUploaded FileStatus = "UPLOADED"
	FileStatusIngested FileStatus = "INGESTED"
	FileStatusFailed   FileStatus = "FAILED"
)

// File is an uploaded check-in sheet sitting in object storage, tracked
// through its ingestion lifecycle.
type File struct {
	ID           int64      `json:"id" db:"id"`
	ObjectKey    string     `json:"object_key" db:"object_key"`
	Status       FileStatus `json:"status" db:"status"`
	ErrorMessage *string    `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
