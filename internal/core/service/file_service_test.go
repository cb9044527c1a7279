package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/driftbox/driftbox/internal/core/domain"
	"github.com/driftbox/driftbox/internal/core/ports"
)

type stubFileRepo struct {
	files     map[string]*domain.StoredFile
	insertErr error
}

func newStubFileRepo() *stubFileRepo {
	return &stubFileRepo{files: make(map[string]*domain.StoredFile)}
}

func (r *stubFileRepo) Insert(_ context.Context, file *domain.StoredFile) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, exists := r.files[file.Key]; exists {
		return domain.ErrDuplicateKey
	}
	copy := *file
	r.files[file.Key] = &copy
	return nil
}

func (r *stubFileRepo) FindByKey(_ context.Context, key string) (*domain.StoredFile, error) {
	f, ok := r.files[key]
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	copy := *f
	return &copy, nil
}

func (r *stubFileRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.StoredFile, error) {
	var out []domain.StoredFile
	for _, f := range r.files {
		if f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	// ascending by upload time, matching the repository contract
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].UploadedAt.Before(out[i].UploadedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

type stubObjectStore struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
	removed []string
}

func newStubObjectStore() *stubObjectStore {
	return &stubObjectStore{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (s *stubObjectStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.objects[key] = data
	s.types[key] = contentType
	return key, nil
}

func (s *stubObjectStore) Get(_ context.Context, ref string) (io.ReadCloser, ports.ObjectInfo, error) {
	data, ok := s.objects[ref]
	if !ok {
		return nil, ports.ObjectInfo{}, errors.New("object missing")
	}
	return io.NopCloser(bytes.NewReader(data)), ports.ObjectInfo{Size: int64(len(data)), ContentType: s.types[ref]}, nil
}

func (s *stubObjectStore) Remove(_ context.Context, ref string) error {
	s.removed = append(s.removed, ref)
	delete(s.objects, ref)
	return nil
}

type stubReserver struct {
	reserved map[string]bool
	deny     bool
}

func newStubReserver() *stubReserver {
	return &stubReserver{reserved: make(map[string]bool)}
}

func (s *stubReserver) Reserve(_ context.Context, key string) (bool, error) {
	if s.deny || s.reserved[key] {
		return false, nil
	}
	s.reserved[key] = true
	return true, nil
}

type stubCleanup struct {
	refs []string
}

func (s *stubCleanup) Enqueue(ref string) {
	s.refs = append(s.refs, ref)
}

type fileServiceFixture struct {
	svc     *FileService
	repo    *stubFileRepo
	store   *stubObjectStore
	cleanup *stubCleanup
}

func newFileServiceFixture() *fileServiceFixture {
	repo := newStubFileRepo()
	store := newStubObjectStore()
	cleanup := &stubCleanup{}
	svc := NewFileService(repo, store, newStubReserver(), cleanup, zerolog.Nop())
	return &fileServiceFixture{svc: svc, repo: repo, store: store, cleanup: cleanup}
}

func pngUpload(name, content string) ports.UploadInput {
	return ports.UploadInput{
		Name:        name,
		ContentType: "image/png",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	}
}

var alice = domain.Identity{UserID: "alice-id", Name: "alice"}
var bob = domain.Identity{UserID: "bob-id", Name: "bob"}

func TestFileService_UploadAndFetchRoundTrip(t *testing.T) {
	fx := newFileServiceFixture()

	result, err := fx.svc.Upload(context.Background(), alice, pngUpload("cat.png", "png-bytes"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if result.Key == "" || !strings.HasSuffix(result.Key, "_cat.png") {
		t.Fatalf("unexpected key: %q", result.Key)
	}
	if result.Size != int64(len("png-bytes")) {
		t.Fatalf("unexpected size: %d", result.Size)
	}

	fetched, err := fx.svc.Fetch(context.Background(), alice, result.Key)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	defer fetched.Content.Close()

	data, err := io.ReadAll(fetched.Content)
	if err != nil {
		t.Fatalf("read content: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("content mismatch: %q", data)
	}
	if fetched.ContentType != "image/png" {
		t.Fatalf("unexpected content type: %q", fetched.ContentType)
	}
}

func TestFileService_UploadRejectsContentType(t *testing.T) {
	fx := newFileServiceFixture()

	input := ports.UploadInput{
		Name:        "notes.txt",
		ContentType: "text/plain",
		Size:        5,
		Reader:      strings.NewReader("hello"),
	}
	if _, err := fx.svc.Upload(context.Background(), alice, input); !errors.Is(err, domain.ErrInvalidFile) {
		t.Fatalf("expected ErrInvalidFile, got %v", err)
	}
	if len(fx.store.objects) != 0 {
		t.Fatalf("rejected upload must not reach the store")
	}
}

func TestFileService_UploadRejectsEmptyFile(t *testing.T) {
	fx := newFileServiceFixture()

	input := ports.UploadInput{Name: "empty.png", ContentType: "image/png", Size: 0, Reader: strings.NewReader("")}
	if _, err := fx.svc.Upload(context.Background(), alice, input); !errors.Is(err, domain.ErrInvalidFile) {
		t.Fatalf("expected ErrInvalidFile, got %v", err)
	}
}

func TestFileService_UploadRecordsNothingOnStorageFailure(t *testing.T) {
	fx := newFileServiceFixture()
	fx.store.putErr = errors.New("write aborted")

	_, err := fx.svc.Upload(context.Background(), alice, pngUpload("cat.png", "png-bytes"))
	if err == nil {
		t.Fatalf("expected error when blob write fails")
	}
	if len(fx.repo.files) != 0 {
		t.Fatalf("metadata must only be recorded after a successful blob write")
	}
	// Nothing landed in the store, so there is nothing to compensate.
	if len(fx.cleanup.refs) != 0 {
		t.Fatalf("no compensating delete expected, got %v", fx.cleanup.refs)
	}
}

func TestFileService_UploadCompensatesOnMetadataFailure(t *testing.T) {
	fx := newFileServiceFixture()
	fx.repo.insertErr = errors.New("registry down")

	_, err := fx.svc.Upload(context.Background(), alice, pngUpload("cat.png", "png-bytes"))
	if err == nil {
		t.Fatalf("expected error when metadata write fails")
	}
	if len(fx.cleanup.refs) != 1 {
		t.Fatalf("expected one compensating delete, got %d", len(fx.cleanup.refs))
	}
	if len(fx.repo.files) != 0 {
		t.Fatalf("no metadata must be recorded on failure")
	}
}

func TestFileService_UploadKeyReservationDenied(t *testing.T) {
	repo := newStubFileRepo()
	store := newStubObjectStore()
	reserver := newStubReserver()
	reserver.deny = true
	svc := NewFileService(repo, store, reserver, &stubCleanup{}, zerolog.Nop())

	if _, err := svc.Upload(context.Background(), alice, pngUpload("cat.png", "x")); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("denied reservation must not reach the store")
	}
}

func TestFileService_OwnershipMasking(t *testing.T) {
	fx := newFileServiceFixture()

	result, err := fx.svc.Upload(context.Background(), alice, pngUpload("secret.png", "alice-data"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	// Bob fetching Alice's file must look exactly like a missing file.
	if _, err := fx.svc.Fetch(context.Background(), bob, result.Key); !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound for foreign file, got %v", err)
	}
	if _, err := fx.svc.Fetch(context.Background(), bob, "missing-key"); !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound for missing file, got %v", err)
	}
}

func TestFileService_ListOwnedOrderAndIsolation(t *testing.T) {
	fx := newFileServiceFixture()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base.Add(2 * time.Second), base, base.Add(time.Second)}
	names := []string{"c.png", "a.png", "b.png"}
	for i, name := range names {
		ts := times[i]
		fx.svc.now = func() time.Time { return ts }
		if _, err := fx.svc.Upload(context.Background(), alice, pngUpload(name, "data")); err != nil {
			t.Fatalf("upload %s: %v", name, err)
		}
	}
	fx.svc.now = time.Now
	if _, err := fx.svc.Upload(context.Background(), bob, pngUpload("bob.png", "data")); err != nil {
		t.Fatalf("bob upload: %v", err)
	}

	metas, err := fx.svc.ListOwned(context.Background(), alice)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("expected 3 files, got %d", len(metas))
	}
	for i := 1; i < len(metas); i++ {
		if metas[i].UploadedAt.Before(metas[i-1].UploadedAt) {
			t.Fatalf("listing not ascending by upload time: %+v", metas)
		}
	}
	for _, m := range metas {
		if strings.Contains(m.Name, "bob") {
			t.Fatalf("listing leaked another owner's file: %+v", m)
		}
	}

	// Listing twice with no intervening upload returns the same sequence.
	again, err := fx.svc.ListOwned(context.Background(), alice)
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if len(again) != len(metas) {
		t.Fatalf("listing not idempotent: %d vs %d", len(again), len(metas))
	}
	for i := range metas {
		if again[i] != metas[i] {
			t.Fatalf("listing not idempotent at %d: %+v vs %+v", i, again[i], metas[i])
		}
	}
}
