package api

import (
	"encoding/json"
	"net/http"

	"serwer-dav/internal/config"
	"serwer-dav/internal/database"
	"serwer-dav/internal/files"
	"serwer-dav/internal/websocket"
)

type Server struct {
	config *config.Config
	store  *database.PostgresStore
	files  *files.Service
	wsHub  *websocket.Hub
}

func NewServer(cfg *config.Config, store *database.PostgresStore, files *files.Service, wsHub *websocket.Hub) *Server {
	return &Server{
		config: cfg,
		store:  store,
		files:  files,
		wsHub:  wsHub,
	}
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// @Summary      Health check
// @Description  Reports whether the server and its database connection are healthy.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok"}
	status := http.StatusOK

	if err := s.store.GetPool().Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
