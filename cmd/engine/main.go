package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/engine"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/utils"
	"inkwell/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	metrics := utils.NewMetricsCollector()

	var store database.Store
	switch cfg.Database.Type {
	case "memory":
		log.Println("Using in-memory store; data will not survive a restart")
		store = database.NewMemoryStore()
	default:
		mongodb, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		store = mongodb
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}()

	hub := websocket.NewHub()
	go hub.Run()

	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, store, hub, cfg.JWTSecret, metrics)

	server := handlers.NewServer(system, eng, metrics, store, hub, cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", server.HandleHealth())
	mux.HandleFunc("/ws", server.HandleWebSocket())

	mux.HandleFunc("/api/auth/register", server.HandleRegister())
	mux.HandleFunc("/api/auth/login", server.HandleLogin())
	mux.HandleFunc("/api/users/profile", server.HandleGetProfile())

	mux.HandleFunc("/api/blogs", server.HandleCreateBlog())
	mux.HandleFunc("/api/blogs/get-blog", server.HandleGetBlog())
	mux.HandleFunc("/api/blogs/like-blog", server.HandleLikeBlog())
	mux.HandleFunc("/api/blogs/isliked-by-user", server.HandleIsLikedByUser())
	mux.HandleFunc("/api/blogs/add-comment", server.HandleAddComment())
	mux.HandleFunc("/api/blogs/get-blog-comments", server.HandleGetBlogComments())
	mux.HandleFunc("/api/blogs/delete-comment", server.HandleDeleteComment())

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)
	handler := middleware.CORSMiddleware(corsConfig)(
		middleware.AuthMiddleware(cfg.JWTSecret, mux),
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
