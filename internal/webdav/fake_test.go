package webdav

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strconv"
	"time"

	"serwer-dav/internal/database"
	"serwer-dav/internal/files"
	"serwer-dav/internal/models"
)

// fakeBackend udaje magazyn encji, serwis plików i weryfikację haseł,
// żeby testy adaptera nie potrzebowały bazy ani dysku.
type fakeBackend struct {
	folders map[string]models.Folder
	files   map[string]models.File
	content map[string][]byte

	nextID   int
	username string
	password string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		folders:  make(map[string]models.Folder),
		files:    make(map[string]models.File),
		content:  make(map[string][]byte),
		username: "admin",
		password: "haslo123",
	}
}

func (f *fakeBackend) newID() string {
	f.nextID++
	return "id_" + strconv.Itoa(f.nextID)
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f *fakeBackend) addFolder(name string, parentID *string) models.Folder {
	folder := models.Folder{
		ID:        f.newID(),
		ParentID:  parentID,
		Name:      name,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
	}
	f.folders[folder.ID] = folder
	return folder
}

func (f *fakeBackend) addFile(name string, folderID *string, body string, mimeType string) models.File {
	var mime *string
	if mimeType != "" {
		mime = &mimeType
	}
	file := models.File{
		ID:         f.newID(),
		FolderID:   folderID,
		Name:       name,
		SizeBytes:  int64(len(body)),
		MimeType:   mime,
		ContentRef: "ref_" + f.newID(),
		CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
	}
	f.files[file.ID] = file
	f.content[file.ContentRef] = []byte(body)
	return file
}

// --- EntityStore ---

func (f *fakeBackend) GetFoldersByParent(ctx context.Context, parentID *string) ([]models.Folder, error) {
	var result []models.Folder
	for _, folder := range f.folders {
		if sameParent(folder.ParentID, parentID) {
			result = append(result, folder)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeBackend) GetFilesByFolder(ctx context.Context, folderID *string) ([]models.File, error) {
	var result []models.File
	for _, file := range f.files {
		if sameParent(file.FolderID, folderID) {
			result = append(result, file)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeBackend) CreateFolder(ctx context.Context, arg database.CreateFolderParams) (*models.Folder, error) {
	for _, folder := range f.folders {
		if sameParent(folder.ParentID, arg.ParentID) && folder.Name == arg.Name {
			return nil, database.ErrDuplicateName
		}
	}
	folder := models.Folder{
		ID:        arg.ID,
		ParentID:  arg.ParentID,
		Name:      arg.Name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.folders[folder.ID] = folder
	return &folder, nil
}

func (f *fakeBackend) FolderExists(ctx context.Context, id string) (bool, error) {
	_, ok := f.folders[id]
	return ok, nil
}

// --- FileService ---

func (f *fakeBackend) Upload(ctx context.Context, in files.UploadInput, folderID *string) (*models.File, error) {
	for _, file := range f.files {
		if sameParent(file.FolderID, folderID) && file.Name == in.Name {
			return nil, database.ErrDuplicateName
		}
	}
	body, err := io.ReadAll(in.Data)
	if err != nil {
		return nil, err
	}
	var mime *string
	if in.MimeType != "" {
		m := in.MimeType
		mime = &m
	}
	file := models.File{
		ID:         f.newID(),
		FolderID:   folderID,
		Name:       in.Name,
		SizeBytes:  in.SizeBytes,
		MimeType:   mime,
		ContentRef: "ref_" + f.newID(),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.files[file.ID] = file
	f.content[file.ContentRef] = body
	return &file, nil
}

func (f *fakeBackend) Download(ctx context.Context, fileID string) (*files.DownloadResult, error) {
	file, ok := f.files[fileID]
	if !ok {
		return nil, nil
	}
	body := f.content[file.ContentRef]
	return &files.DownloadResult{
		Name:      file.Name,
		SizeBytes: int64(len(body)),
		MimeType:  file.MimeType,
		Data:      io.NopCloser(bytes.NewReader(body)),
	}, nil
}

func (f *fakeBackend) Delete(ctx context.Context, fileID string) error {
	file, ok := f.files[fileID]
	if !ok {
		return files.ErrFileNotFound
	}
	delete(f.content, file.ContentRef)
	delete(f.files, fileID)
	return nil
}

func (f *fakeBackend) DeleteFolder(ctx context.Context, folderID string) (bool, error) {
	if _, ok := f.folders[folderID]; !ok {
		return false, nil
	}
	delete(f.folders, folderID)
	for id, file := range f.files {
		if file.FolderID != nil && *file.FolderID == folderID {
			delete(f.content, file.ContentRef)
			delete(f.files, id)
		}
	}
	for id, folder := range f.folders {
		if folder.ParentID != nil && *folder.ParentID == folderID {
			f.DeleteFolder(ctx, id)
		}
	}
	return true, nil
}

// --- CredentialVerifier ---

func (f *fakeBackend) Verify(ctx context.Context, username, password string) (bool, error) {
	return username == f.username && password == f.password, nil
}
