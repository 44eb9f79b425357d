package model

type IngestionJob struct {
	FileID    int64  `json:"file_id"`
	ObjectKey string `json:"object_key"`
}

type IngestRequest struct {
	FileID int64 `json:"file_id"`
}
