package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage trzyma bloby na dysku pod nieprzezroczystym identyfikatorem
// (content_ref). Identyfikator nigdy nie jest interpretowany - to tylko klucz.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Bloby są rozrzucane po podkatalogach według prefiksu identyfikatora,
// żeby nie składować wszystkiego w jednym katalogu.
func (ls *LocalStorage) pathForRef(ref string) string {
	if len(ref) < 4 {
		return filepath.Join(ls.basePath, ref)
	}
	return filepath.Join(ls.basePath, ref[:2], ref[2:4], ref)
}

func (ls *LocalStorage) Save(ref string, data io.Reader) error {
	blobPath := ls.pathForRef(ref)

	if err := os.MkdirAll(filepath.Dir(blobPath), os.ModePerm); err != nil {
		return err
	}

	file, err := os.Create(blobPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, data)
	return err
}

func (ls *LocalStorage) Get(ref string) (io.ReadCloser, error) {
	blobPath := ls.pathForRef(ref)

	file, err := os.Open(blobPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob %s not found: %w", ref, err)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStorage) Delete(ref string) error {
	err := os.Remove(ls.pathForRef(ref))
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
