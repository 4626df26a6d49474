package webdav

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"serwer-dav/internal/database"
	"serwer-dav/internal/files"
	"serwer-dav/internal/models"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jaevor/go-nanoid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var davRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "webdav_requests_total",
		Help: "Liczba żądań WebDAV według metody i kodu odpowiedzi.",
	},
	[]string{"method", "status"},
)

// FileService obsługuje zawartość plików; adapter nie dotyka blobów wprost.
type FileService interface {
	Upload(ctx context.Context, in files.UploadInput, folderID *string) (*models.File, error)
	Download(ctx context.Context, fileID string) (*files.DownloadResult, error)
	Delete(ctx context.Context, fileID string) error
	DeleteFolder(ctx context.Context, folderID string) (bool, error)
}

// CredentialVerifier sprawdza parę login/hasło z nagłówka Basic Auth.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

type davHandlerFunc func(w http.ResponseWriter, r *http.Request, davPath string)

// Handler to adapter protokołu WebDAV: płaska tablica metoda -> obsługa,
// wspólny krok uwierzytelnienia i normalizacji ścieżki przed rozdzieleniem.
type Handler struct {
	prefix   string
	realm    string
	store    EntityStore
	service  FileService
	creds    CredentialVerifier
	resolver *Resolver

	routes        map[string]davHandlerFunc
	unimplemented map[string]bool
}

func NewHandler(prefix, realm string, store EntityStore, service FileService, creds CredentialVerifier) *Handler {
	h := &Handler{
		prefix:   strings.TrimSuffix(prefix, "/"),
		realm:    realm,
		store:    store,
		service:  service,
		creds:    creds,
		resolver: NewResolver(store),
	}

	h.routes = map[string]davHandlerFunc{
		http.MethodOptions: h.handleOptions,
		"PROPFIND":         h.handlePropfind,
		http.MethodGet:     h.handleGetHead,
		http.MethodHead:    h.handleGetHead,
		http.MethodPut:     h.handlePut,
		http.MethodDelete:  h.handleDelete,
		"MKCOL":            h.handleMkcol,
	}

	// Jawnie niewspierane metody odpowiadają 501, a nie cichym no-opem
	h.unimplemented = map[string]bool{
		"MOVE":      true,
		"COPY":      true,
		"LOCK":      true,
		"UNLOCK":    true,
		"PROPPATCH": true,
	}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("ERROR: WebDAV %s %s panicked: %v", r.Method, r.URL.Path, rec)
			http.Error(ww, "Internal Server Error", http.StatusInternalServerError)
		}
		davRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
	}()

	username, password, ok := r.BasicAuth()
	if ok {
		valid, err := h.creds.Verify(r.Context(), username, password)
		if err != nil {
			log.Printf("ERROR: WebDAV credential check failed: %v", err)
			ok = false
		} else {
			ok = valid
		}
	}
	if !ok {
		ww.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", h.realm))
		http.Error(ww, "Authorization required", http.StatusUnauthorized)
		return
	}

	// net/http dekoduje procentowe kodowanie już w URL.Path
	davPath := strings.TrimPrefix(r.URL.Path, h.prefix)
	if davPath == "" {
		davPath = "/"
	}

	if handle, found := h.routes[r.Method]; found {
		handle(ww, r, davPath)
		return
	}
	if h.unimplemented[r.Method] {
		http.Error(ww, "Method not implemented", http.StatusNotImplemented)
		return
	}
	http.Error(ww, "Method not allowed", http.StatusMethodNotAllowed)
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request, davPath string) {
	w.Header().Set("Allow", "OPTIONS, GET, HEAD, PUT, DELETE, PROPFIND, MKCOL")
	w.Header().Set("DAV", "1, 2")
	w.Header().Set("MS-Author-Via", "DAV")
	w.WriteHeader(http.StatusOK)
}

func childHref(base, name string, isFolder bool) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	href := base + name
	if isFolder {
		href += "/"
	}
	return href
}

func (h *Handler) handlePropfind(w http.ResponseWriter, r *http.Request, davPath string) {
	depth := r.Header.Get("Depth")
	if depth == "" {
		depth = "1"
	}

	resolved, err := h.resolver.Resolve(r.Context(), davPath)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if resolved == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	responses := []davResponse{renderProps(resolved, davPath)}

	var parentID *string
	listChildren := false
	switch v := resolved.(type) {
	case Root:
		listChildren = depth != "0"
	case FolderResource:
		parentID = &v.Folder.ID
		listChildren = depth != "0"
	}

	if listChildren {
		childFolders, err := h.store.GetFoldersByParent(r.Context(), parentID)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		childFiles, err := h.store.GetFilesByFolder(r.Context(), parentID)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		// Najpierw foldery, potem pliki - tak jak w wygenerowanych listingach
		for i := range childFolders {
			href := childHref(davPath, childFolders[i].Name, true)
			responses = append(responses, renderProps(FolderResource{Folder: childFolders[i]}, href))
		}
		for i := range childFiles {
			href := childHref(davPath, childFiles[i].Name, false)
			responses = append(responses, renderProps(FileResource{File: childFiles[i]}, href))
		}
	}

	body, err := renderMultistatus(responses)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("DAV", "1, 2")
	w.WriteHeader(http.StatusMultiStatus)
	w.Write(body)
}

func (h *Handler) handleGetHead(w http.ResponseWriter, r *http.Request, davPath string) {
	resolved, err := h.resolver.Resolve(r.Context(), davPath)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Dla GET folder nie jest zasobem do pobrania
	file, isFile := resolved.(FileResource)
	if !isFile {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	result, err := h.service.Download(r.Context(), file.File.ID)
	if err != nil {
		log.Printf("ERROR: WebDAV GET %s: %v", davPath, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if result == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	defer result.Data.Close()

	mimeType := defaultMimeType
	if result.MimeType != nil && *result.MimeType != "" {
		mimeType = *result.MimeType
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(result.SizeBytes, 10))
	w.Header().Set("Last-Modified", file.File.UpdatedAt.UTC().Format(http.TimeFormat))

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	io.Copy(w, result.Data)
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request, davPath string) {
	segments := splitPath(davPath)
	if len(segments) == 0 {
		http.Error(w, "Conflict", http.StatusConflict)
		return
	}
	fileName := segments[len(segments)-1]
	parentPath := "/" + strings.Join(segments[:len(segments)-1], "/")

	parent, err := h.resolver.Resolve(r.Context(), parentPath)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	folderID, ok := collectionID(parent)
	if !ok {
		// Brak rodzica to konflikt strukturalny, nie 404
		http.Error(w, "Parent directory not found", http.StatusConflict)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultMimeType
	}

	_, err = h.service.Upload(r.Context(), files.UploadInput{
		Name:      fileName,
		SizeBytes: int64(len(body)),
		MimeType:  contentType,
		Data:      bytes.NewReader(body),
	}, folderID)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			http.Error(w, "Resource already exists", http.StatusConflict)
			return
		}
		log.Printf("ERROR: WebDAV PUT %s: %v", davPath, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", h.prefix+davPath)
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, davPath string) {
	resolved, err := h.resolver.Resolve(r.Context(), davPath)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	switch v := resolved.(type) {
	case FolderResource:
		deleted, err := h.service.DeleteFolder(r.Context(), v.Folder.ID)
		if err != nil {
			log.Printf("ERROR: WebDAV DELETE %s: %v", davPath, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if !deleted {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
	case FileResource:
		if err := h.service.Delete(r.Context(), v.File.ID); err != nil {
			if errors.Is(err, files.ErrFileNotFound) {
				http.Error(w, "Not Found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: WebDAV DELETE %s: %v", davPath, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	default:
		// Korzenia nie da się usunąć; nierozwiązana ścieżka to zwykłe 404
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMkcol(w http.ResponseWriter, r *http.Request, davPath string) {
	segments := splitPath(davPath)
	if len(segments) == 0 {
		http.Error(w, "Conflict", http.StatusConflict)
		return
	}
	name := segments[len(segments)-1]
	parentPath := "/" + strings.Join(segments[:len(segments)-1], "/")

	parent, err := h.resolver.Resolve(r.Context(), parentPath)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	folderID, ok := collectionID(parent)
	if !ok {
		http.Error(w, "Conflict", http.StatusConflict)
		return
	}

	folderUID, err := h.generateUniqueFolderID(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	_, err = h.store.CreateFolder(r.Context(), database.CreateFolderParams{
		ID:       folderUID,
		Name:     name,
		ParentID: folderID,
	})
	if err != nil {
		// Każde niepowodzenie MKCOL to konflikt, z duplikatem włącznie
		http.Error(w, "Conflict", http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// collectionID wyciąga identyfikator rodzica z rozwiązanego zasobu:
// nil dla korzenia, id dla folderu, brak dla pliku i nietrafionej ścieżki.
func collectionID(res Resource) (*string, bool) {
	switch v := res.(type) {
	case Root:
		return nil, true
	case FolderResource:
		id := v.Folder.ID
		return &id, true
	default:
		return nil, false
	}
}

func (h *Handler) generateUniqueFolderID(ctx context.Context) (string, error) {
	maxRetries := 10

	generateID, err := nanoid.Standard(21)
	if err != nil {
		return "", fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		id := generateID()
		exists, err := h.store.FolderExists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check for folder existence: %w", err)
		}
		if !exists {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}
