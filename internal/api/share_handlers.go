package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"serwer-dav/internal/database"

	"github.com/go-chi/chi/v5"
	"github.com/jaevor/go-nanoid"
)

type ShareLinkResponse struct {
	Token string `json:"token" example:"V1StGXR8_Z5jdHi6B-myT78q_Z5jdHi6B-myT78q"`
	URL   string `json:"url" example:"/share/V1StGXR8_Z5jdHi6B-myT78q_Z5jdHi6B-myT78q"`
}

// @Summary      Create a public share link
// @Description  Creates an unauthenticated download link for a file. Anyone with the token can fetch the file.
// @Tags         shares
// @Produce      json
// @Security     BearerAuth
// @Param        fileId  path      string  true  "File ID to share"
// @Success      201  {object}  ShareLinkResponse
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "File not found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /files/{fileId}/share [post]
func (s *Server) CreateShareLinkHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")
	if fileID == "" {
		http.Error(w, "File ID is required", http.StatusBadRequest)
		return
	}

	generateToken, err := nanoid.Standard(40)
	if err != nil {
		log.Printf("CRITICAL: Failed to initialize nanoid generator: %v", err)
		http.Error(w, "Internal server error (token generation)", http.StatusInternalServerError)
		return
	}
	token := generateToken()

	share, err := s.store.CreateShareLink(r.Context(), fileID, token)
	if err != nil {
		if errors.Is(err, database.ErrFileNotFound) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to create share link for file %s: %v", fileID, err)
		http.Error(w, "Failed to create share link", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ShareLinkResponse{
		Token: share.Token,
		URL:   "/share/" + share.Token,
	})
}

// @Summary      Download a shared file
// @Description  Downloads a file through its public share token. No authentication required.
// @Tags         shares
// @Produce      octet-stream
// @Param        token  path  string  true  "Share token"
// @Success      200  {file}    file
// @Failure      404  {string}  string "Share link not found or expired"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /share/{token} [get]
func (s *Server) GetSharedFileHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		http.Error(w, "Share token is required", http.StatusBadRequest)
		return
	}

	share, err := s.store.GetShareLinkByToken(r.Context(), token)
	if err != nil {
		http.Error(w, "Failed to look up share link", http.StatusInternalServerError)
		return
	}
	if share == nil {
		http.Error(w, "Share link not found or expired", http.StatusNotFound)
		return
	}

	result, err := s.files.Download(r.Context(), share.FileID)
	if err != nil {
		http.Error(w, "Failed to retrieve file", http.StatusInternalServerError)
		return
	}
	if result == nil {
		// Plik zniknął po utworzeniu linku
		http.Error(w, "Share link not found or expired", http.StatusNotFound)
		return
	}
	defer result.Data.Close()

	w.Header().Set("Content-Disposition", "attachment; filename=\""+result.Name+"\"")
	if result.MimeType != nil && *result.MimeType != "" {
		w.Header().Set("Content-Type", *result.MimeType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Length", fmt.Sprintf("%d", result.SizeBytes))

	io.Copy(w, result.Data)
}
