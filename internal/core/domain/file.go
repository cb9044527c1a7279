package domain

import (
	"errors"
	"time"
)

var ErrFileNotFound = errors.New("file not found")
var ErrDuplicateKey = errors.New("storage key already in use")
var ErrInvalidFile = errors.New("invalid file")

// AcceptedContentTypes lists the MIME types the gateway will store.
var AcceptedContentTypes = map[string]bool{
	"image/png": true,
}

// StoredFile links an object in external storage to its owning user.
// Key doubles as the public identifier; StorageRef locates the bytes in the
// blob store. OwnerID is immutable once set.
type StoredFile struct {
	Key         string    `json:"key" bson:"key"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Size        int64     `json:"size" bson:"size"`
	ContentType string    `json:"content_type" bson:"content_type"`
	StorageRef  string    `json:"storage_ref" bson:"storage_ref"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
