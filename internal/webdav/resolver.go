package webdav

import (
	"context"
	"strings"

	"serwer-dav/internal/database"
	"serwer-dav/internal/models"
)

// EntityStore to wycinek magazynu encji potrzebny adapterowi WebDAV.
type EntityStore interface {
	GetFoldersByParent(ctx context.Context, parentID *string) ([]models.Folder, error)
	GetFilesByFolder(ctx context.Context, folderID *string) ([]models.File, error)
	CreateFolder(ctx context.Context, arg database.CreateFolderParams) (*models.Folder, error)
	FolderExists(ctx context.Context, id string) (bool, error)
}

// Resource to wynik rozwiązania ścieżki. Korzeń jest osobnym wariantem,
// a nie rekordem z flagą - kod renderujący nie pomyli go z encją z bazy.
type Resource interface {
	isResource()
}

type Root struct{}

type FolderResource struct {
	Folder models.Folder
}

type FileResource struct {
	File models.File
}

func (Root) isResource()           {}
func (FolderResource) isResource() {}
func (FileResource) isResource()   {}

type Resolver struct {
	store EntityStore
}

func NewResolver(store EntityStore) *Resolver {
	return &Resolver{store: store}
}

func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// Resolve schodzi po ścieżce segment po segmencie: jedno zapytanie o foldery
// na segment, plus jedno o pliki na końcu. Zwraca nil, gdy ścieżka nie
// prowadzi do niczego.
//
// Na ostatnim segmencie folder zawsze wygrywa z plikiem o tej samej nazwie -
// foldery są sprawdzane pierwsze. Wygenerowane listingi na tym polegają.
func (r *Resolver) Resolve(ctx context.Context, path string) (Resource, error) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return Root{}, nil
	}

	var parentID *string
	for i, segment := range segments {
		last := i == len(segments)-1

		folders, err := r.store.GetFoldersByParent(ctx, parentID)
		if err != nil {
			return nil, err
		}

		var found *models.Folder
		for j := range folders {
			if folders[j].Name == segment {
				found = &folders[j]
				break
			}
		}

		if found != nil {
			if last {
				return FolderResource{Folder: *found}, nil
			}
			parentID = &found.ID
			continue
		}

		if !last {
			// Pliki nie mają dzieci, nie ma czego szukać głębiej
			return nil, nil
		}

		files, err := r.store.GetFilesByFolder(ctx, parentID)
		if err != nil {
			return nil, err
		}
		for j := range files {
			if files[j].Name == segment {
				return FileResource{File: files[j]}, nil
			}
		}
		return nil, nil
	}

	return nil, nil
}
