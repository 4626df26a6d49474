package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureUploadSession_Idempotent(t *testing.T) {
	uploadID := "upload_idempotent_" + newTestID(t)

	session, err := testStore.EnsureUploadSession(context.Background(), UploadSessionParams{
		UploadID:         uploadID,
		OriginalFileName: "duzy_plik.iso",
		OriginalFileSize: 300,
		TotalChunks:      3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, session.TotalChunks)

	// Kolejny fragment nie nadpisuje parametrów sesji
	again, err := testStore.EnsureUploadSession(context.Background(), UploadSessionParams{
		UploadID:         uploadID,
		OriginalFileName: "inna_nazwa.iso",
		OriginalFileSize: 999,
		TotalChunks:      7,
	})
	require.NoError(t, err)
	require.Equal(t, "duzy_plik.iso", again.OriginalFileName)
	require.Equal(t, 3, again.TotalChunks)
}

func TestPutUploadChunk_OverwriteReturnsPreviousRef(t *testing.T) {
	uploadID := "upload_overwrite_" + newTestID(t)

	_, err := testStore.EnsureUploadSession(context.Background(), UploadSessionParams{
		UploadID:         uploadID,
		OriginalFileName: "f.bin",
		OriginalFileSize: 10,
		TotalChunks:      1,
	})
	require.NoError(t, err)

	prev, err := testStore.PutUploadChunk(context.Background(), PutUploadChunkParams{
		UploadID:   uploadID,
		ChunkIndex: 0,
		ContentRef: "ref_pierwszy",
		SizeBytes:  10,
	})
	require.NoError(t, err)
	require.Nil(t, prev)

	prev, err = testStore.PutUploadChunk(context.Background(), PutUploadChunkParams{
		UploadID:   uploadID,
		ChunkIndex: 0,
		ContentRef: "ref_drugi",
		SizeBytes:  10,
	})
	require.NoError(t, err)
	require.NotNil(t, prev)
	require.Equal(t, "ref_pierwszy", *prev)

	chunks, err := testStore.GetUploadChunks(context.Background(), uploadID)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, "ref_drugi", chunks[0].ContentRef)
}

func TestGetUploadChunks_OrderedByIndex(t *testing.T) {
	uploadID := "upload_order_" + newTestID(t)

	_, err := testStore.EnsureUploadSession(context.Background(), UploadSessionParams{
		UploadID:         uploadID,
		OriginalFileName: "f.bin",
		OriginalFileSize: 30,
		TotalChunks:      3,
	})
	require.NoError(t, err)

	// Fragmenty wysłane w odwrotnej kolejności
	for _, idx := range []int{2, 0, 1} {
		_, err := testStore.PutUploadChunk(context.Background(), PutUploadChunkParams{
			UploadID:   uploadID,
			ChunkIndex: idx,
			ContentRef: "ref_" + string(rune('a'+idx)),
			SizeBytes:  10,
		})
		require.NoError(t, err)
	}

	chunks, err := testStore.GetUploadChunks(context.Background(), uploadID)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	require.Equal(t, 0, chunks[0].ChunkIndex)
	require.Equal(t, 1, chunks[1].ChunkIndex)
	require.Equal(t, 2, chunks[2].ChunkIndex)
}

func TestDeleteUploadSession_CascadesToChunks(t *testing.T) {
	uploadID := "upload_delete_" + newTestID(t)

	_, err := testStore.EnsureUploadSession(context.Background(), UploadSessionParams{
		UploadID:         uploadID,
		OriginalFileName: "f.bin",
		OriginalFileSize: 10,
		TotalChunks:      1,
	})
	require.NoError(t, err)

	_, err = testStore.PutUploadChunk(context.Background(), PutUploadChunkParams{
		UploadID:   uploadID,
		ChunkIndex: 0,
		ContentRef: "ref_kasowany",
		SizeBytes:  10,
	})
	require.NoError(t, err)

	deleted, err := testStore.DeleteUploadSession(context.Background(), uploadID)
	require.NoError(t, err)
	require.True(t, deleted)

	session, err := testStore.GetUploadSession(context.Background(), uploadID)
	require.NoError(t, err)
	require.Nil(t, session)

	chunks, err := testStore.GetUploadChunks(context.Background(), uploadID)
	require.NoError(t, err)
	require.Empty(t, chunks)

	// Sprzątanie nieistniejącej sesji to nie błąd
	deleted, err = testStore.DeleteUploadSession(context.Background(), uploadID)
	require.NoError(t, err)
	require.False(t, deleted)
}
