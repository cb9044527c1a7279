package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/driftbox/driftbox/internal/core/domain"
	"github.com/driftbox/driftbox/internal/core/ports"
)

// FileService implements upload, fetch and listing with the single
// authorization rule of the system: a file is readable only by the identity
// whose id matches its recorded owner.
type FileService struct {
	repo     ports.FileRepository
	store    ports.ObjectStore
	reserver ports.KeyReserver
	cleanup  ports.CleanupQueue
	logger   zerolog.Logger
	now      func() time.Time
}

func NewFileService(repo ports.FileRepository, store ports.ObjectStore, reserver ports.KeyReserver, cleanup ports.CleanupQueue, logger zerolog.Logger) *FileService {
	return &FileService{
		repo:     repo,
		store:    store,
		reserver: reserver,
		cleanup:  cleanup,
		logger:   logger,
		now:      time.Now,
	}
}

// Upload validates the content type, derives a fresh storage key, writes the
// bytes to the blob store and only then records ownership metadata. Success
// is reported only after both the external write and the metadata record
// succeed; a metadata failure after a completed write schedules a
// compensating delete of the orphaned object.
func (s *FileService) Upload(ctx context.Context, identity domain.Identity, input ports.UploadInput) (*ports.UploadResult, error) {
	if input.Name == "" || input.Size <= 0 || input.Reader == nil {
		return nil, domain.ErrInvalidFile
	}
	if !domain.AcceptedContentTypes[input.ContentType] {
		return nil, domain.ErrInvalidFile
	}

	now := s.now().UTC()
	key := deriveKey(now, input.Name)

	ok, err := s.reserver.Reserve(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reserve key: %w", err)
	}
	if !ok {
		return nil, domain.ErrDuplicateKey
	}

	ref, err := s.store.Put(ctx, key, input.Reader, input.Size, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}

	file := &domain.StoredFile{
		Key:         key,
		OwnerID:     identity.UserID,
		Size:        input.Size,
		ContentType: input.ContentType,
		StorageRef:  ref,
		UploadedAt:  now,
	}

	if err := s.repo.Insert(ctx, file); err != nil {
		// The blob landed but its ownership record did not; the object is
		// unreachable and must be removed out of band.
		s.cleanup.Enqueue(ref)
		s.logger.Error().Err(err).Str("key", key).Msg("metadata record failed after storage write")
		return nil, fmt.Errorf("record file metadata: %w", err)
	}

	return &ports.UploadResult{Key: key, Size: input.Size, UploadedAt: now}, nil
}

// Fetch streams a stored file to its owner. An unknown key and a key owned
// by someone else are externally indistinguishable: both are ErrFileNotFound.
func (s *FileService) Fetch(ctx context.Context, identity domain.Identity, key string) (*ports.FetchResult, error) {
	file, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}
	if file.OwnerID != identity.UserID {
		return nil, domain.ErrFileNotFound
	}

	content, info, err := s.store.Get(ctx, file.StorageRef)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}

	size := file.Size
	if info.Size > 0 {
		size = info.Size
	}
	return &ports.FetchResult{Content: content, Size: size, ContentType: file.ContentType}, nil
}

// ListOwned returns the caller's files ordered by upload time, ascending.
func (s *FileService) ListOwned(ctx context.Context, identity domain.Identity) ([]ports.FileMeta, error) {
	files, err := s.repo.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	metas := make([]ports.FileMeta, 0, len(files))
	for _, f := range files {
		metas = append(metas, ports.FileMeta{
			Name:       f.Key,
			Size:       f.Size,
			UploadedAt: f.UploadedAt,
		})
	}
	return metas, nil
}

// deriveKey builds a storage key from the upload instant and the sanitized
// original file name: "<unix millis>_<base name>".
func deriveKey(now time.Time, name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return fmt.Sprintf("%d_%s", now.UnixMilli(), base)
}
