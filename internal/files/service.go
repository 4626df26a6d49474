package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"serwer-dav/internal/database"
	"serwer-dav/internal/models"

	"github.com/jaevor/go-nanoid"
)

var ErrFileNotFound = errors.New("file not found")

// Store to wycinek magazynu encji, z którego korzysta serwis plików.
type Store interface {
	CreateFile(ctx context.Context, arg database.CreateFileParams) (*models.File, error)
	GetFileByID(ctx context.Context, id string) (*models.File, error)
	DeleteFile(ctx context.Context, id string) (*string, error)
	DeleteFolderTree(ctx context.Context, id string) ([]string, bool, error)
	EnsureUploadSession(ctx context.Context, arg database.UploadSessionParams) (*models.UploadSession, error)
	GetUploadSession(ctx context.Context, uploadID string) (*models.UploadSession, error)
	PutUploadChunk(ctx context.Context, arg database.PutUploadChunkParams) (*string, error)
	GetUploadChunks(ctx context.Context, uploadID string) ([]models.UploadChunk, error)
	DeleteUploadSession(ctx context.Context, uploadID string) (bool, error)
}

// BlobStorage przechowuje zawartość plików pod nieprzezroczystym content_ref.
type BlobStorage interface {
	Save(ref string, data io.Reader) error
	Get(ref string) (io.ReadCloser, error)
	Delete(ref string) error
}

type Service struct {
	store Store
	blobs BlobStorage

	merges *mergeLocks
}

func NewService(store Store, blobs BlobStorage) *Service {
	return &Service{
		store:  store,
		blobs:  blobs,
		merges: newMergeLocks(),
	}
}

func newRef() (string, error) {
	generateID, err := nanoid.Standard(21)
	if err != nil {
		return "", fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}
	return generateID(), nil
}

// UploadInput to ulotny opis wgrywanego pliku - nazwa, rozmiar, typ i treść.
type UploadInput struct {
	Name      string
	SizeBytes int64
	MimeType  string
	Data      io.Reader
}

func (s *Service) Upload(ctx context.Context, in UploadInput, folderID *string) (*models.File, error) {
	fileID, err := newRef()
	if err != nil {
		return nil, err
	}
	contentRef, err := newRef()
	if err != nil {
		return nil, err
	}

	if err := s.blobs.Save(contentRef, in.Data); err != nil {
		return nil, fmt.Errorf("failed to store file content: %w", err)
	}

	var mimeType *string
	if in.MimeType != "" {
		mimeType = &in.MimeType
	}

	file, err := s.store.CreateFile(ctx, database.CreateFileParams{
		ID:         fileID,
		FolderID:   folderID,
		Name:       in.Name,
		SizeBytes:  in.SizeBytes,
		MimeType:   mimeType,
		ContentRef: contentRef,
	})
	if err != nil {
		// Rekord nie powstał, więc blob nie może zostać jako kompletny plik
		if delErr := s.blobs.Delete(contentRef); delErr != nil {
			log.Printf("WARN: failed to remove orphaned blob %s: %v", contentRef, delErr)
		}
		return nil, err
	}

	return file, nil
}

type DownloadResult struct {
	Name      string
	SizeBytes int64
	MimeType  *string
	Data      io.ReadCloser
}

// Download zwraca nil, nil gdy plik nie istnieje.
func (s *Service) Download(ctx context.Context, fileID string) (*DownloadResult, error) {
	file, err := s.store.GetFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}

	data, err := s.blobs.Get(file.ContentRef)
	if err != nil {
		return nil, fmt.Errorf("failed to open content of file %s: %w", fileID, err)
	}

	return &DownloadResult{
		Name:      file.Name,
		SizeBytes: file.SizeBytes,
		MimeType:  file.MimeType,
		Data:      data,
	}, nil
}

func (s *Service) Delete(ctx context.Context, fileID string) error {
	contentRef, err := s.store.DeleteFile(ctx, fileID)
	if err != nil {
		return err
	}
	if contentRef == nil {
		return ErrFileNotFound
	}

	if err := s.blobs.Delete(*contentRef); err != nil {
		log.Printf("WARN: failed to delete blob %s of removed file %s: %v", *contentRef, fileID, err)
	}

	return nil
}

// DeleteFolder usuwa folder z całym poddrzewem; rekordy kasuje magazyn encji,
// bloby sprzątamy tutaj najlepszym wysiłkiem.
func (s *Service) DeleteFolder(ctx context.Context, folderID string) (bool, error) {
	contentRefs, deleted, err := s.store.DeleteFolderTree(ctx, folderID)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	for _, ref := range contentRefs {
		if err := s.blobs.Delete(ref); err != nil {
			log.Printf("WARN: failed to delete blob %s of removed folder %s: %v", ref, folderID, err)
		}
	}

	return true, nil
}
