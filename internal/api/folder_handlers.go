package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"serwer-dav/internal/database"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jaevor/go-nanoid"
)

type CreateFolderRequest struct {
	Name     string  `json:"name" example:"Dokumenty"`
	ParentID *string `json:"parent_id"`
}

func (s *Server) generateUniqueFolderID(ctx context.Context) (string, error) {
	maxRetries := 10

	generateID, err := nanoid.Standard(21)
	if err != nil {
		return "", fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		id := generateID()
		exists, err := s.store.FolderExists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check for folder existence: %w", err)
		}
		if !exists {
			return id, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}

// @Summary      Create a folder
// @Description  Creates a new folder under the given parent, or at the root when parent_id is omitted.
// @Tags         folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createFolderRequest  body      CreateFolderRequest  true  "Folder details"
// @Success      201  {object}  models.Folder
// @Failure      400  {string}  string "Bad Request"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      409  {string}  string "Conflict - name already taken in this folder"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /folders [post]
func (s *Server) CreateFolderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Folder name cannot be empty", http.StatusBadRequest)
		return
	}

	if req.ParentID != nil && len(*req.ParentID) != 21 {
		http.Error(w, "Invalid ParentID format", http.StatusBadRequest)
		return
	}

	folderID, err := s.generateUniqueFolderID(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	folder, err := s.store.CreateFolder(r.Context(), database.CreateFolderParams{
		ID:       folderID,
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if errors.Is(err, database.ErrParentNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create folder", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(folder)
}

type RenameRequest struct {
	Name string `json:"name" example:"Nowa nazwa"`
}

func (req RenameRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
	)
}

// @Summary      Get folder metadata
// @Tags         folders
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path  string  true  "Folder ID"
// @Success      200  {object}  models.Folder
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "Folder not found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /folders/{folderId} [get]
func (s *Server) GetFolderHandler(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "folderId")

	folder, err := s.store.GetFolderByID(r.Context(), folderID)
	if err != nil {
		http.Error(w, "Failed to retrieve folder", http.StatusInternalServerError)
		return
	}
	if folder == nil {
		http.Error(w, "Folder not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(folder)
}

// @Summary      Rename a folder
// @Tags         folders
// @Accept       json
// @Security     BearerAuth
// @Param        folderId       path  string         true  "Folder ID"
// @Param        renameRequest  body  RenameRequest  true  "New name"
// @Success      200  {null}    nil
// @Failure      400  {string}  string "Bad Request"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "Folder not found"
// @Failure      409  {string}  string "Conflict - name already taken in this folder"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /folders/{folderId} [patch]
func (s *Server) RenameFolderHandler(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "folderId")

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

	success, err := s.store.RenameFolder(r.Context(), folderID, newName)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateName) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to rename folder", http.StatusInternalServerError)
		return
	}
	if !success {
		http.Error(w, "Folder not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// @Summary      Delete a folder
// @Description  Deletes a folder together with its whole subtree, files included.
// @Tags         folders
// @Security     BearerAuth
// @Param        folderId  path  string  true  "Folder ID"
// @Success      204  {null}    nil "No Content"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "Folder not found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /folders/{folderId} [delete]
func (s *Server) DeleteFolderHandler(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "folderId")
	if folderID == "" {
		http.Error(w, "Folder ID is required", http.StatusBadRequest)
		return
	}

	deleted, err := s.files.DeleteFolder(r.Context(), folderID)
	if err != nil {
		http.Error(w, "Failed to delete folder", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Folder not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
