package webdav

import (
	"testing"
	"time"

	"serwer-dav/internal/models"

	"github.com/stretchr/testify/require"
)

func TestRenderMultistatus_EscapesMarkupInNames(t *testing.T) {
	file := models.File{
		ID:        "f1",
		Name:      `raport <Q3 & Q4> "final".txt`,
		SizeBytes: 42,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
	}

	body, err := renderMultistatus([]davResponse{
		renderProps(FileResource{File: file}, `/raport <Q3 & Q4> "final".txt`),
	})
	require.NoError(t, err)

	out := string(body)
	require.Contains(t, out, "&lt;Q3 &amp; Q4&gt;")
	require.NotContains(t, out, "<Q3", "surowe znaczniki w nazwie psują dokument XML")
}

func TestRenderProps_Folder(t *testing.T) {
	folder := models.Folder{
		ID:        "d1",
		Name:      "docs",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
	}

	resp := renderProps(FolderResource{Folder: folder}, "/docs/")

	require.Equal(t, "/docs/", resp.Href)
	require.Equal(t, "docs", resp.Propstat.Prop.DisplayName)
	require.Equal(t, "2024-05-01T12:00:00Z", resp.Propstat.Prop.CreationDate)
	require.Equal(t, "Thu, 02 May 2024 12:00:00 GMT", resp.Propstat.Prop.LastModified)
	require.NotNil(t, resp.Propstat.Prop.ResourceType.Collection)
	require.Nil(t, resp.Propstat.Prop.ContentLength)
	require.Equal(t, "HTTP/1.1 200 OK", resp.Propstat.Status)
}

func TestRenderProps_FileDefaultsContentType(t *testing.T) {
	file := models.File{
		ID:        "f1",
		Name:      "dane.bin",
		SizeBytes: 1024,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
	}

	resp := renderProps(FileResource{File: file}, "/dane.bin")

	require.Nil(t, resp.Propstat.Prop.ResourceType.Collection)
	require.NotNil(t, resp.Propstat.Prop.ContentLength)
	require.Equal(t, int64(1024), *resp.Propstat.Prop.ContentLength)
	require.Equal(t, "application/octet-stream", resp.Propstat.Prop.ContentType)
}

func TestRenderMultistatus_DeclaresNamespace(t *testing.T) {
	body, err := renderMultistatus([]davResponse{renderProps(Root{}, "/")})
	require.NoError(t, err)

	out := string(body)
	require.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	require.Contains(t, out, `xmlns:D="DAV:"`)
	require.Contains(t, out, "<D:collection>")
}
