package api

import (
	"encoding/json"
	"net/http"

	"serwer-dav/internal/models"
)

type EntryListResponse struct {
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
}

// @Summary      List folder contents
// @Description  Lists folders and files directly under the given parent. Omit parent_id to list the root.
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        parent_id  query     string  false  "Parent folder ID"
// @Success      200  {object}  EntryListResponse
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /entries [get]
func (s *Server) ListEntriesHandler(w http.ResponseWriter, r *http.Request) {
	parentIDStr := r.URL.Query().Get("parent_id")

	var parentID *string
	if parentIDStr != "" {
		parentID = &parentIDStr
	}

	folders, err := s.store.GetFoldersByParent(r.Context(), parentID)
	if err != nil {
		http.Error(w, "Failed to list folders", http.StatusInternalServerError)
		return
	}

	files, err := s.store.GetFilesByFolder(r.Context(), parentID)
	if err != nil {
		http.Error(w, "Failed to list files", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(EntryListResponse{
		Folders: folders,
		Files:   files,
	})
}
