// @title           WebDAV File Server API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"serwer-dav/internal/api"
	"serwer-dav/internal/auth"
	"serwer-dav/internal/config"
	"serwer-dav/internal/database"
	"serwer-dav/internal/files"
	"serwer-dav/internal/storage"
	"serwer-dav/internal/webdav"
	"serwer-dav/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "serwer-dav/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Nie można połączyć się z bazą danych: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Nie można pingować bazy danych: %v", err)
	}
	log.Println("Pomyślnie połączono z bazą danych")

	localStorage, err := storage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Nie można zainicjować local storage: %v", err)
	}
	log.Printf("Pliki będą przechowywane w: %s", cfg.Storage.Path)

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(dbpool, wsHub)
	fileService := files.NewService(store, localStorage)
	server := api.NewServer(cfg, store, fileService, wsHub)

	davHandler := webdav.NewHandler(cfg.DAV.Prefix, cfg.DAV.Realm, store, fileService, auth.NewBasicVerifier(store))

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("https://localhost/swagger/doc.json"),
	))

	r.Get("/ws", server.ServeWsHandler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Serwer DAV działa! Dokumentacja dostępna pod /swagger/index.html"))
	})

	r.Post("/api/v1/auth/login", server.LoginHandler)
	r.Post("/api/v1/auth/refresh", server.RefreshTokenHandler)

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/share/{token}", server.GetSharedFileHandler)

	// Adapter WebDAV sam rozdziela metody, łącznie z PROPFIND i MKCOL,
	// więc montujemy go jako surowy http.Handler
	r.Handle(cfg.DAV.Prefix, davHandler)
	r.Handle(cfg.DAV.Prefix+"/*", davHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(server.AuthMiddleware)
		r.Post("/auth/logout", server.LogoutHandler)
		r.Get("/me", server.GetCurrentUserHandler)
		r.Get("/entries", server.ListEntriesHandler)
		r.Post("/folders", server.CreateFolderHandler)
		r.Get("/folders/{folderId}", server.GetFolderHandler)
		r.Patch("/folders/{folderId}", server.RenameFolderHandler)
		r.Delete("/folders/{folderId}", server.DeleteFolderHandler)
		r.Post("/files", server.UploadFileHandler)
		r.Get("/files/{fileId}", server.GetFileHandler)
		r.Get("/files/{fileId}/download", server.DownloadFileHandler)
		r.Patch("/files/{fileId}", server.RenameFileHandler)
		r.Delete("/files/{fileId}", server.DeleteFileHandler)
		r.Post("/files/{fileId}/share", server.CreateShareLinkHandler)
		r.Post("/files/chunk", server.UploadChunkHandler)
		r.Post("/files/merge", server.MergeChunksHandler)
		r.Delete("/files/upload/{uploadId}", server.CleanupUploadHandler)
		r.Get("/sessions", server.ListSessionsHandler)
		r.Delete("/sessions/{sessionId}", server.DeleteSessionHandler)
		r.Post("/sessions/terminate_all", server.TerminateAllSessionsHandler)
		r.Get("/events", server.GetEventsHandler)
	})

	log.Printf("Montuję WebDAV pod prefiksem %s", cfg.DAV.Prefix)
	log.Println("Uruchamianie serwera na porcie :8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
