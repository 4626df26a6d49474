package webdav

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHandler(backend *fakeBackend) *Handler {
	return NewHandler("/webdav", "serwer-dav", backend, backend, backend)
}

func davRequest(t *testing.T, h *Handler, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if authorized {
		req.SetBasicAuth("admin", "haslo123")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_RequiresBasicAuth(t *testing.T) {
	h := newTestHandler(newFakeBackend())

	rec := davRequest(t, h, "PROPFIND", "/webdav/", "", false)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), `Basic realm="serwer-dav"`)
}

func TestHandler_RejectsBadPassword(t *testing.T) {
	h := newTestHandler(newFakeBackend())

	req := httptest.NewRequest("PROPFIND", "/webdav/", nil)
	req.SetBasicAuth("admin", "zle-haslo")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_Options(t *testing.T) {
	h := newTestHandler(newFakeBackend())

	rec := davRequest(t, h, http.MethodOptions, "/webdav/", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "1, 2", rec.Header().Get("DAV"))
	require.Contains(t, rec.Header().Get("Allow"), "PROPFIND")
	require.Contains(t, rec.Header().Get("Allow"), "MKCOL")
	require.NotContains(t, rec.Header().Get("Allow"), "MOVE")
}

func TestHandler_UnimplementedMethodsReturn501(t *testing.T) {
	h := newTestHandler(newFakeBackend())

	for _, method := range []string{"MOVE", "COPY", "LOCK", "UNLOCK", "PROPPATCH"} {
		rec := davRequest(t, h, method, "/webdav/cokolwiek", "", true)
		require.Equal(t, http.StatusNotImplemented, rec.Code, "metoda %s", method)
	}
}

func TestHandler_UnknownMethodReturns405(t *testing.T) {
	h := newTestHandler(newFakeBackend())

	rec := davRequest(t, h, http.MethodPatch, "/webdav/", "", true)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_MkcolThenDuplicateConflicts(t *testing.T) {
	backend := newFakeBackend()
	h := newTestHandler(backend)

	rec := davRequest(t, h, "MKCOL", "/webdav/projekty", "", true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = davRequest(t, h, "MKCOL", "/webdav/projekty", "", true)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_MkcolMissingParentConflicts(t *testing.T) {
	h := newTestHandler(newFakeBackend())

	rec := davRequest(t, h, "MKCOL", "/webdav/brak/nowy", "", true)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_PutThenGetRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	backend.addFolder("docs", nil)
	h := newTestHandler(backend)

	req := httptest.NewRequest(http.MethodPut, "/webdav/docs/a.txt", strings.NewReader("treść pliku"))
	req.SetBasicAuth("admin", "haslo123")
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "/webdav/docs/a.txt", rec.Header().Get("Location"))

	rec = davRequest(t, h, http.MethodGet, "/webdav/docs/a.txt", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "treść pliku", rec.Body.String())
	require.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	require.NotEmpty(t, rec.Header().Get("Last-Modified"))
}

func TestHandler_PutWithoutContentTypeGetsDefault(t *testing.T) {
	backend := newFakeBackend()
	h := newTestHandler(backend)

	rec := davRequest(t, h, http.MethodPut, "/webdav/dane.bin", "\x00\x01", true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = davRequest(t, h, http.MethodGet, "/webdav/dane.bin", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
}

func TestHandler_PutMissingParentConflicts(t *testing.T) {
	h := newTestHandler(newFakeBackend())

	rec := davRequest(t, h, http.MethodPut, "/webdav/brak/a.txt", "abc", true)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_PutDuplicateNameConflicts(t *testing.T) {
	backend := newFakeBackend()
	backend.addFile("a.txt", nil, "stara treść", "text/plain")
	h := newTestHandler(backend)

	rec := davRequest(t, h, http.MethodPut, "/webdav/a.txt", "nowa treść", true)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_HeadSkipsBody(t *testing.T) {
	backend := newFakeBackend()
	backend.addFile("a.txt", nil, "treść", "text/plain")
	h := newTestHandler(backend)

	rec := davRequest(t, h, http.MethodHead, "/webdav/a.txt", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("Content-Length"))
}

func TestHandler_GetFolderReturns404(t *testing.T) {
	backend := newFakeBackend()
	backend.addFolder("docs", nil)
	h := newTestHandler(backend)

	rec := davRequest(t, h, http.MethodGet, "/webdav/docs", "", true)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_PropfindDepth1ListsChildren(t *testing.T) {
	backend := newFakeBackend()
	docs := backend.addFolder("docs", nil)
	backend.addFolder("reports", &docs.ID)
	backend.addFile("a.txt", &docs.ID, "abc", "text/plain")
	h := newTestHandler(backend)

	req := httptest.NewRequest("PROPFIND", "/webdav/docs", nil)
	req.SetBasicAuth("admin", "haslo123")
	req.Header.Set("Depth", "1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMultiStatus, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/xml")

	out := rec.Body.String()
	require.Equal(t, 3, strings.Count(out, "<D:response>"))
	require.Contains(t, out, "<D:href>/docs/reports/</D:href>")
	require.Contains(t, out, "<D:href>/docs/a.txt</D:href>")
}

func TestHandler_PropfindDepth0OnlySelf(t *testing.T) {
	backend := newFakeBackend()
	docs := backend.addFolder("docs", nil)
	backend.addFile("a.txt", &docs.ID, "abc", "")
	h := newTestHandler(backend)

	req := httptest.NewRequest("PROPFIND", "/webdav/docs", nil)
	req.SetBasicAuth("admin", "haslo123")
	req.Header.Set("Depth", "0")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMultiStatus, rec.Code)
	require.Equal(t, 1, strings.Count(rec.Body.String(), "<D:response>"))
}

func TestHandler_PropfindMissingDepthDefaultsToOne(t *testing.T) {
	backend := newFakeBackend()
	backend.addFolder("docs", nil)
	h := newTestHandler(backend)

	rec := davRequest(t, h, "PROPFIND", "/webdav/", "", true)

	require.Equal(t, http.StatusMultiStatus, rec.Code)
	require.Equal(t, 2, strings.Count(rec.Body.String(), "<D:response>"))
}

func TestHandler_PropfindMissingPath(t *testing.T) {
	h := newTestHandler(newFakeBackend())

	rec := davRequest(t, h, "PROPFIND", "/webdav/nieistnieje", "", true)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteFile(t *testing.T) {
	backend := newFakeBackend()
	backend.addFile("a.txt", nil, "abc", "")
	h := newTestHandler(backend)

	rec := davRequest(t, h, http.MethodDelete, "/webdav/a.txt", "", true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = davRequest(t, h, http.MethodDelete, "/webdav/a.txt", "", true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteFolderSubtree(t *testing.T) {
	backend := newFakeBackend()
	docs := backend.addFolder("docs", nil)
	reports := backend.addFolder("reports", &docs.ID)
	backend.addFile("a.txt", &reports.ID, "abc", "")
	h := newTestHandler(backend)

	rec := davRequest(t, h, http.MethodDelete, "/webdav/docs", "", true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, backend.folders)
	require.Empty(t, backend.files)
}

func TestHandler_DeleteRootReturns404(t *testing.T) {
	h := newTestHandler(newFakeBackend())

	rec := davRequest(t, h, http.MethodDelete, "/webdav/", "", true)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
