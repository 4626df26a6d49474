package database

import (
	"context"
	"testing"

	"serwer-dav/internal/models"

	"github.com/stretchr/testify/require"
)

func createTestFile(t *testing.T, name string, folderID *string) *models.File {
	t.Helper()
	mime := "application/octet-stream"
	file, err := testStore.CreateFile(context.Background(), CreateFileParams{
		ID:         newTestID(t),
		FolderID:   folderID,
		Name:       name,
		SizeBytes:  1234,
		MimeType:   &mime,
		ContentRef: "ref_" + newTestID(t),
	})
	require.NoError(t, err)
	return file
}

func TestCreateFile_Success(t *testing.T) {
	folder := createTestFolder(t, "Pliki_Create", nil)
	file := createTestFile(t, "raport.pdf", &folder.ID)

	require.Equal(t, "raport.pdf", file.Name)
	require.Equal(t, int64(1234), file.SizeBytes)
	require.NotEmpty(t, file.ContentRef)
}

func TestCreateFile_DuplicateNameInFolder(t *testing.T) {
	folder := createTestFolder(t, "Pliki_Duplikat", nil)
	createTestFile(t, "ten_sam.txt", &folder.ID)

	mime := "text/plain"
	_, err := testStore.CreateFile(context.Background(), CreateFileParams{
		ID:         newTestID(t),
		FolderID:   &folder.ID,
		Name:       "ten_sam.txt",
		MimeType:   &mime,
		ContentRef: "ref_dup",
	})
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestCreateFile_FolderAndFileMayShareName(t *testing.T) {
	parent := createTestFolder(t, "Wspolna_Nazwa_Rodzic", nil)

	// Unikalność nazw obowiązuje osobno wśród folderów i osobno wśród plików
	createTestFolder(t, "wspolna", &parent.ID)
	file := createTestFile(t, "wspolna", &parent.ID)
	require.Equal(t, "wspolna", file.Name)
}

func TestGetFilesByFolder(t *testing.T) {
	folder := createTestFolder(t, "Pliki_Lista", nil)
	fileA := createTestFile(t, "a.txt", &folder.ID)
	fileB := createTestFile(t, "b.txt", &folder.ID)

	files, err := testStore.GetFilesByFolder(context.Background(), &folder.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, fileA.ID, files[0].ID)
	require.Equal(t, fileB.ID, files[1].ID)
}

func TestRenameFile(t *testing.T) {
	folder := createTestFolder(t, "Pliki_Rename", nil)
	file := createTestFile(t, "stara_nazwa.txt", &folder.ID)

	ok, err := testStore.RenameFile(context.Background(), file.ID, "nowa_nazwa.txt")
	require.NoError(t, err)
	require.True(t, ok)

	reloaded, err := testStore.GetFileByID(context.Background(), file.ID)
	require.NoError(t, err)
	require.Equal(t, "nowa_nazwa.txt", reloaded.Name)
}

func TestDeleteFile_ReturnsContentRef(t *testing.T) {
	folder := createTestFolder(t, "Pliki_Delete", nil)
	file := createTestFile(t, "do_kasacji.txt", &folder.ID)

	ref, err := testStore.DeleteFile(context.Background(), file.ID)
	require.NoError(t, err)
	require.NotNil(t, ref)
	require.Equal(t, file.ContentRef, *ref)

	// Drugi raz już nie ma czego usuwać
	ref, err = testStore.DeleteFile(context.Background(), file.ID)
	require.NoError(t, err)
	require.Nil(t, ref)
}

func TestShareLink_RoundTrip(t *testing.T) {
	folder := createTestFolder(t, "Udostepnianie", nil)
	file := createTestFile(t, "publiczny.txt", &folder.ID)

	link, err := testStore.CreateShareLink(context.Background(), file.ID, "token_testowy_40_znakow")
	require.NoError(t, err)
	require.Equal(t, file.ID, link.FileID)

	found, err := testStore.GetShareLinkByToken(context.Background(), "token_testowy_40_znakow")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, link.ID, found.ID)

	missing, err := testStore.GetShareLinkByToken(context.Background(), "nie_ma_takiego_tokenu")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestShareLink_MissingFile(t *testing.T) {
	_, err := testStore.CreateShareLink(context.Background(), newTestID(t), "token_do_niczego")
	require.ErrorIs(t, err, ErrFileNotFound)
}
