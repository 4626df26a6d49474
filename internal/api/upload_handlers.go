package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"serwer-dav/internal/database"
	"serwer-dav/internal/files"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type chunkForm struct {
	UploadID         string
	ChunkIndex       int
	TotalChunks      int
	OriginalFileName string
	OriginalFileSize int64
	FolderID         *string
}

func (f chunkForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.UploadID, validation.Required, validation.Length(1, 128)),
		validation.Field(&f.ChunkIndex, validation.Min(0)),
		validation.Field(&f.TotalChunks, validation.Required, validation.Min(1)),
		validation.Field(&f.OriginalFileName, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.OriginalFileSize, validation.Min(0)),
	)
}

func parseChunkForm(r *http.Request) (*chunkForm, error) {
	form := &chunkForm{
		UploadID:         r.FormValue("upload_id"),
		OriginalFileName: r.FormValue("original_file_name"),
	}

	var err error
	if form.ChunkIndex, err = strconv.Atoi(r.FormValue("chunk_index")); err != nil {
		return nil, errors.New("chunk_index must be a number")
	}
	if form.TotalChunks, err = strconv.Atoi(r.FormValue("total_chunks")); err != nil {
		return nil, errors.New("total_chunks must be a number")
	}
	if form.OriginalFileSize, err = strconv.ParseInt(r.FormValue("original_file_size"), 10, 64); err != nil {
		return nil, errors.New("original_file_size must be a number")
	}

	if folderID := r.FormValue("folder_id"); folderID != "" {
		if len(folderID) != 21 {
			return nil, errors.New("invalid folder_id format")
		}
		form.FolderID = &folderID
	}

	return form, form.Validate()
}

// @Summary      Upload a file chunk
// @Description  Stores one chunk of a chunked upload. The first chunk for a given upload_id implicitly opens the upload session; chunks may arrive in any order, and re-sending an index overwrites the previous chunk.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        upload_id           formData  string  true   "Client-chosen upload session ID"
// @Param        chunk_index         formData  int     true   "Zero-based chunk index"
// @Param        total_chunks        formData  int     true   "Total number of chunks"
// @Param        original_file_name  formData  string  true   "Name of the file being uploaded"
// @Param        original_file_size  formData  int     true   "Declared size of the full file in bytes"
// @Param        folder_id           formData  string  false  "Target folder ID, omit for root"
// @Param        chunk               formData  file    true   "Chunk content"
// @Success      201  {object}  models.UploadChunk
// @Failure      400  {string}  string "Bad Request"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      409  {string}  string "Conflict"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /files/chunk [post]
func (s *Server) UploadChunkHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<28)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Error parsing multipart form", http.StatusBadRequest)
		return
	}

	form, err := parseChunkForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	chunk, handler, err := r.FormFile("chunk")
	if err != nil {
		http.Error(w, "Error retrieving the chunk", http.StatusBadRequest)
		return
	}
	defer chunk.Close()

	stored, err := s.files.StoreChunk(r.Context(), files.ChunkInput{
		UploadID:         form.UploadID,
		ChunkIndex:       form.ChunkIndex,
		TotalChunks:      form.TotalChunks,
		OriginalFileName: form.OriginalFileName,
		OriginalFileSize: form.OriginalFileSize,
		FolderID:         form.FolderID,
		SizeBytes:        handler.Size,
		Data:             chunk,
	})
	if err != nil {
		if errors.Is(err, database.ErrParentNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, files.ErrChunkIndexOutOfRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, files.ErrSessionNotFound) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		log.Printf("ERROR: Failed to store chunk %d of upload %s: %v", form.ChunkIndex, form.UploadID, err)
		http.Error(w, "Failed to store chunk", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(stored)
}

type MergeRequest struct {
	UploadID string `json:"upload_id" example:"upl_V1StGXR8Z5jdHi6B"`
	FileName string `json:"file_name" example:"film.mp4"`
	MimeType string `json:"mime_type" example:"video/mp4"`
}

func (req MergeRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.UploadID, validation.Required, validation.Length(1, 128)),
		validation.Field(&req.FileName, validation.Required, validation.Length(1, 255)),
	)
}

// @Summary      Merge uploaded chunks
// @Description  Assembles all chunks of an upload session into a single file. Fails with 409 when any chunk index is still missing; the session stays intact so the client can re-send it.
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        mergeRequest  body      MergeRequest  true  "Merge details"
// @Success      201  {object}  models.File
// @Failure      400  {string}  string "Bad Request"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "Upload session not found"
// @Failure      409  {string}  string "Conflict - upload incomplete or name already taken"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /files/merge [post]
func (s *Server) MergeChunksHandler(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	merged, err := s.files.Merge(r.Context(), files.MergeInput{
		UploadID: req.UploadID,
		FileName: req.FileName,
		MimeType: req.MimeType,
	})
	if err != nil {
		switch {
		case errors.Is(err, files.ErrSessionNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, files.ErrChunkMissing):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, database.ErrDuplicateName):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Printf("ERROR: Failed to merge upload %s: %v", req.UploadID, err)
			http.Error(w, "Failed to merge chunks", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(merged)
}

// @Summary      Abandon an upload session
// @Description  Removes an upload session together with all stored chunks. Always answers 200; the body says whether anything was actually cleaned up.
// @Tags         uploads
// @Produce      json
// @Security     BearerAuth
// @Param        uploadId  path      string  true  "Upload session ID"
// @Success      200  {object}  files.CleanupResult
// @Failure      401  {string}  string "Unauthorized"
// @Router       /files/upload/{uploadId} [delete]
func (s *Server) CleanupUploadHandler(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadId")
	if uploadID == "" {
		http.Error(w, "Upload ID is required", http.StatusBadRequest)
		return
	}

	result := s.files.Cleanup(r.Context(), uploadID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
