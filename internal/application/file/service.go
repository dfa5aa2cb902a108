// Package file relays image uploads into the object store and records them.
package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/canopy-api/internal/domain"
	s3infra "github.com/canopy-api/internal/infrastructure/s3"
	"github.com/canopy-api/internal/pkg/id"
)

// ObjectStore is the storage backend uploads are relayed into.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// Records persists upload metadata.
type Records interface {
	Put(ctx context.Context, f *domain.File) error
}

type Service interface {
	// Upload relays the reader into the object store under a caller-scoped key
	// and returns the stored file record.
	Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (*domain.File, error)
}

type service struct {
	store   ObjectStore
	records Records
	folder  string
}

func NewService(store ObjectStore, records Records, folder string) Service {
	if folder == "" {
		folder = "canopy"
	}
	return &service{store: store, records: records, folder: folder}
}

func (s *service) Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (*domain.File, error) {
	if s.store == nil {
		return nil, domain.ErrUploadUnconfigured
	}
	if contentType == "" {
		contentType = s3infra.DetectContentType(filename)
	}

	fileID := id.New()
	key := fmt.Sprintf("%s/%s/%s%s", s.folder, userID, fileID, path.Ext(filename))
	url, err := s.store.Upload(ctx, key, r, contentType)
	if err != nil {
		return nil, fmt.Errorf("relay upload: %v: %w", err, domain.ErrUploadFailed)
	}

	f := &domain.File{
		FileID:      fileID,
		Key:         key,
		URL:         url,
		ContentType: contentType,
		UploadedBy:  userID,
		CreatedAt:   time.Now().UTC(),
	}
	// The object is already stored; a failed metadata write is logged, not
	// surfaced, so the caller still gets a usable URL.
	if err := s.records.Put(ctx, f); err != nil {
		slog.Warn("failed to record uploaded file", "key", key, "err", err)
	}
	return f, nil
}
