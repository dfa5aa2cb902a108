package domain

import "time"

// File records an uploaded object relayed to the object store.
type File struct {
	FileID      string    `json:"id" dynamodbav:"file_id"`
	Key         string    `json:"key" dynamodbav:"s3_key"`
	URL         string    `json:"url" dynamodbav:"url"`
	ContentType string    `json:"content_type" dynamodbav:"content_type"`
	UploadedBy  string    `json:"uploaded_by" dynamodbav:"uploaded_by_user_id"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
}
