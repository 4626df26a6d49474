package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"serwer-dav/internal/database"
	"serwer-dav/internal/models"
)

var ErrSessionNotFound = errors.New("upload session not found")
var ErrChunkMissing = errors.New("upload is incomplete")
var ErrChunkIndexOutOfRange = errors.New("chunk index out of range")

// mergeLocks wymusza wzajemne wykluczanie scalania per upload_id.
// Równoległe wysyłanie fragmentów jest dozwolone, równoległe scalanie nie.
type mergeLocks struct {
	mu    sync.Mutex
	locks map[string]*mergeLock
}

type mergeLock struct {
	sync.Mutex
	refs int
}

func newMergeLocks() *mergeLocks {
	return &mergeLocks{locks: make(map[string]*mergeLock)}
}

func (m *mergeLocks) lock(uploadID string) *mergeLock {
	m.mu.Lock()
	l, ok := m.locks[uploadID]
	if !ok {
		l = &mergeLock{}
		m.locks[uploadID] = l
	}
	l.refs++
	m.mu.Unlock()

	l.Lock()
	return l
}

func (m *mergeLocks) release(uploadID string, l *mergeLock) {
	l.Unlock()

	m.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, uploadID)
	}
	m.mu.Unlock()
}

type ChunkInput struct {
	UploadID         string
	ChunkIndex       int
	TotalChunks      int
	OriginalFileName string
	OriginalFileSize int64
	FolderID         *string
	SizeBytes        int64
	Data             io.Reader
}

// StoreChunk zapisuje jeden fragment uploadu. Pierwszy fragment zakłada
// sesję; kolejność nadsyłania fragmentów jest dowolna. Powtórzony indeks
// nadpisuje poprzedni fragment, a jego blob jest sprzątany.
func (s *Service) StoreChunk(ctx context.Context, in ChunkInput) (*models.UploadChunk, error) {
	session, err := s.store.EnsureUploadSession(ctx, database.UploadSessionParams{
		UploadID:         in.UploadID,
		OriginalFileName: in.OriginalFileName,
		OriginalFileSize: in.OriginalFileSize,
		TotalChunks:      in.TotalChunks,
		FolderID:         in.FolderID,
	})
	if err != nil {
		return nil, err
	}
	if session == nil {
		// Równoległe sprzątanie mogło usunąć sesję między zapisem a odczytem
		return nil, ErrSessionNotFound
	}

	if in.ChunkIndex < 0 || in.ChunkIndex >= session.TotalChunks {
		return nil, fmt.Errorf("%w: index %d with %d chunks declared", ErrChunkIndexOutOfRange, in.ChunkIndex, session.TotalChunks)
	}

	contentRef, err := newRef()
	if err != nil {
		return nil, err
	}

	if err := s.blobs.Save(contentRef, in.Data); err != nil {
		return nil, fmt.Errorf("failed to store chunk content: %w", err)
	}

	prevRef, err := s.store.PutUploadChunk(ctx, database.PutUploadChunkParams{
		UploadID:   in.UploadID,
		ChunkIndex: in.ChunkIndex,
		ContentRef: contentRef,
		SizeBytes:  in.SizeBytes,
	})
	if err != nil {
		if delErr := s.blobs.Delete(contentRef); delErr != nil {
			log.Printf("WARN: failed to remove orphaned chunk blob %s: %v", contentRef, delErr)
		}
		return nil, err
	}

	if prevRef != nil {
		// Polityka nadpisywania: nowy fragment wygrywa, stary blob znika
		if err := s.blobs.Delete(*prevRef); err != nil {
			log.Printf("WARN: failed to delete replaced chunk blob %s: %v", *prevRef, err)
		}
	}

	return &models.UploadChunk{
		UploadID:   in.UploadID,
		ChunkIndex: in.ChunkIndex,
		ContentRef: contentRef,
		SizeBytes:  in.SizeBytes,
	}, nil
}

type MergeInput struct {
	UploadID string
	FileName string
	MimeType string
}

// Merge skleja wszystkie fragmenty w jeden plik. Scalenie wymaga kompletu
// indeksów 0..total_chunks-1; luka przerywa operację i zostawia sesję
// nietkniętą, żeby dało się dosłać brakujący fragment albo posprzątać.
func (s *Service) Merge(ctx context.Context, in MergeInput) (*models.File, error) {
	l := s.merges.lock(in.UploadID)
	defer s.merges.release(in.UploadID, l)

	session, err := s.store.GetUploadSession(ctx, in.UploadID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	chunks, err := s.store.GetUploadChunks(ctx, in.UploadID)
	if err != nil {
		return nil, err
	}

	byIndex := make(map[int]models.UploadChunk, len(chunks))
	for _, chunk := range chunks {
		byIndex[chunk.ChunkIndex] = chunk
	}

	ordered := make([]models.UploadChunk, 0, session.TotalChunks)
	var totalBytes int64
	for i := 0; i < session.TotalChunks; i++ {
		chunk, ok := byIndex[i]
		if !ok {
			return nil, fmt.Errorf("%w: chunk %d of %d was never received", ErrChunkMissing, i, session.TotalChunks)
		}
		ordered = append(ordered, chunk)
		totalBytes += chunk.SizeBytes
	}

	if totalBytes != session.OriginalFileSize {
		log.Printf("WARN: upload %s declared %d bytes but chunks hold %d", in.UploadID, session.OriginalFileSize, totalBytes)
	}

	contentRef, err := s.assembleChunks(ctx, ordered)
	if err != nil {
		// Sesja zostaje - scalenie można powtórzyć albo jawnie posprzątać
		return nil, err
	}

	fileName := in.FileName
	if fileName == "" {
		fileName = session.OriginalFileName
	}
	var mimeType *string
	if in.MimeType != "" {
		mimeType = &in.MimeType
	}

	fileID, err := newRef()
	if err != nil {
		return nil, err
	}

	file, err := s.store.CreateFile(ctx, database.CreateFileParams{
		ID:         fileID,
		FolderID:   session.FolderID,
		Name:       fileName,
		SizeBytes:  totalBytes,
		MimeType:   mimeType,
		ContentRef: contentRef,
	})
	if err != nil {
		if delErr := s.blobs.Delete(contentRef); delErr != nil {
			log.Printf("WARN: failed to remove assembled blob %s: %v", contentRef, delErr)
		}
		return nil, err
	}

	// Od tego momentu plik jest kompletny - artefakty sesji tylko sprzątamy
	if _, err := s.store.DeleteUploadSession(ctx, in.UploadID); err != nil {
		log.Printf("WARN: failed to delete merged upload session %s: %v", in.UploadID, err)
	}
	for _, chunk := range ordered {
		if err := s.blobs.Delete(chunk.ContentRef); err != nil {
			log.Printf("WARN: failed to delete chunk blob %s of upload %s: %v", chunk.ContentRef, in.UploadID, err)
		}
	}

	return file, nil
}

func (s *Service) assembleChunks(ctx context.Context, ordered []models.UploadChunk) (string, error) {
	contentRef, err := newRef()
	if err != nil {
		return "", err
	}

	pr, pw := io.Pipe()
	go func() {
		var copyErr error
		for _, chunk := range ordered {
			if ctx.Err() != nil {
				copyErr = ctx.Err()
				break
			}
			rc, err := s.blobs.Get(chunk.ContentRef)
			if err != nil {
				copyErr = fmt.Errorf("failed to read chunk %d: %w", chunk.ChunkIndex, err)
				break
			}
			_, err = io.Copy(pw, rc)
			rc.Close()
			if err != nil {
				copyErr = fmt.Errorf("failed to copy chunk %d: %w", chunk.ChunkIndex, err)
				break
			}
		}
		pw.CloseWithError(copyErr)
	}()

	if err := s.blobs.Save(contentRef, pr); err != nil {
		pr.CloseWithError(err)
		if delErr := s.blobs.Delete(contentRef); delErr != nil {
			log.Printf("WARN: failed to remove partially assembled blob %s: %v", contentRef, delErr)
		}
		return "", fmt.Errorf("failed to assemble upload content: %w", err)
	}

	return contentRef, nil
}

// CleanupResult to miękki wynik sprzątania - sprzątanie nigdy nie zgłasza
// błędu, który mógłby przerwać szerszy przepływ.
type CleanupResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Cleanup usuwa sesję uploadu i wszystkie jej fragmenty.
func (s *Service) Cleanup(ctx context.Context, uploadID string) CleanupResult {
	chunks, err := s.store.GetUploadChunks(ctx, uploadID)
	if err != nil {
		log.Printf("WARN: cleanup of upload %s failed to list chunks: %v", uploadID, err)
		return CleanupResult{Success: false, Error: "failed to list upload chunks"}
	}

	deleted, err := s.store.DeleteUploadSession(ctx, uploadID)
	if err != nil {
		log.Printf("WARN: cleanup of upload %s failed: %v", uploadID, err)
		return CleanupResult{Success: false, Error: "failed to delete upload session"}
	}
	if !deleted {
		return CleanupResult{Success: false, Error: "upload session not found"}
	}

	for _, chunk := range chunks {
		if err := s.blobs.Delete(chunk.ContentRef); err != nil {
			log.Printf("WARN: cleanup of upload %s failed to delete blob %s: %v", uploadID, chunk.ContentRef, err)
		}
	}

	return CleanupResult{Success: true}
}
