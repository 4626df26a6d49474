package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"serwer-dav/internal/database"
	"serwer-dav/internal/files"

	"github.com/go-chi/chi/v5"
)

// @Summary      Upload a file
// @Description  Uploads a single file in one request as multipart form data. For large files use the chunked endpoints instead.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file       formData  file    true   "File content"
// @Param        folder_id  formData  string  false  "Target folder ID, omit for root"
// @Success      201  {object}  models.File
// @Failure      400  {string}  string "Bad Request"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      409  {string}  string "Conflict - name already taken in this folder"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /files [post]
func (s *Server) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<30)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Error parsing multipart form", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	folderIDStr := r.FormValue("folder_id")
	var folderID *string
	if folderIDStr != "" {
		if len(folderIDStr) != 21 {
			http.Error(w, "Invalid folder_id format", http.StatusBadRequest)
			return
		}
		folderID = &folderIDStr
	}

	created, err := s.files.Upload(r.Context(), files.UploadInput{
		Name:      handler.Filename,
		SizeBytes: handler.Size,
		MimeType:  handler.Header.Get("Content-Type"),
		Data:      file,
	}, folderID)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if errors.Is(err, database.ErrParentNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create file record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// @Summary      Get file metadata
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        fileId  path  string  true  "File ID"
// @Success      200  {object}  models.File
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "File not found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /files/{fileId} [get]
func (s *Server) GetFileHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")

	file, err := s.store.GetFileByID(r.Context(), fileID)
	if err != nil {
		http.Error(w, "Failed to retrieve file", http.StatusInternalServerError)
		return
	}
	if file == nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(file)
}

// @Summary      Download a file
// @Tags         files
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        fileId  path  string  true  "File ID"
// @Success      200  {file}    file
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "File not found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /files/{fileId}/download [get]
func (s *Server) DownloadFileHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")
	if fileID == "" {
		http.Error(w, "File ID is required", http.StatusBadRequest)
		return
	}

	result, err := s.files.Download(r.Context(), fileID)
	if err != nil {
		http.Error(w, "Failed to retrieve file", http.StatusInternalServerError)
		return
	}
	if result == nil {
		http.Error(w, "File not found", http.StatusNotFound)
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

// @Summary      Rename a file
// @Tags         files
// @Accept       json
// @Security     BearerAuth
// @Param        fileId         path  string         true  "File ID"
// @Param        renameRequest  body  RenameRequest  true  "New name"
// @Success      200  {null}    nil
// @Failure      400  {string}  string "Bad Request"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "File not found"
// @Failure      409  {string}  string "Conflict - name already taken in this folder"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /files/{fileId} [patch]
func (s *Server) RenameFileHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")

	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	newName := strings.TrimSpace(req.Name)
	if newName == "" {
		http.Error(w, "Name cannot be empty", http.StatusBadRequest)
		return
	}

	success, err := s.store.RenameFile(r.Context(), fileID, newName)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to rename file", http.StatusInternalServerError)
		return
	}
	if !success {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// @Summary      Delete a file
// @Tags         files
// @Security     BearerAuth
// @Param        fileId  path  string  true  "File ID"
// @Success      204  {null}    nil "No Content"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "File not found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /files/{fileId} [delete]
func (s *Server) DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileId")
	if fileID == "" {
		http.Error(w, "File ID is required", http.StatusBadRequest)
		return
	}

	if err := s.files.Delete(r.Context(), fileID); err != nil {
		if errors.Is(err, files.ErrFileNotFound) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete file", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
