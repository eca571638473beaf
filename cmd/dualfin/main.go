package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"dualfin/internal/auth"
	database "dualfin/internal/db"
	"dualfin/internal/ledger/application"
	"dualfin/internal/ledger/infrastructure"
	"dualfin/internal/ledger/interfaces"
	"dualfin/internal/storage"
	"dualfin/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

type Server struct {
	router             *http.ServeMux
	dbService          *database.DBService
	authService        auth.Service
	authHandler        *auth.Handler
	userHandler        *user.Handler
	transactionHandler *interfaces.TransactionHandler
	eventHandler       *interfaces.EventHandler
	balanceHandler     *interfaces.BalanceHandler
}

func NewServer(
	dbService *database.DBService,
	authService auth.Service,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	transactionHandler *interfaces.TransactionHandler,
	eventHandler *interfaces.EventHandler,
	balanceHandler *interfaces.BalanceHandler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		dbService:          dbService,
		authService:        authService,
		authHandler:        authHandler,
		userHandler:        userHandler,
		transactionHandler: transactionHandler,
		eventHandler:       eventHandler,
		balanceHandler:     balanceHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ready",
		"database": s.dbService.Health(),
	})
}

func (s *Server) RegisterRoutes() {
	withAuth := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.authHandler.HandleSignup))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", withAuth(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))

	protectedRoutes.Handle("POST /api/protected/transactions", withAuth(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("GET /api/protected/transactions", withAuth(http.HandlerFunc(s.transactionHandler.GetTransactions)))
	protectedRoutes.Handle("PUT /api/protected/transactions/{id}", withAuth(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/transactions/{id}", withAuth(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	protectedRoutes.Handle("POST /api/protected/events", withAuth(http.HandlerFunc(s.eventHandler.CreateEvent)))
	protectedRoutes.Handle("GET /api/protected/events", withAuth(http.HandlerFunc(s.eventHandler.GetEvents)))
	protectedRoutes.Handle("PUT /api/protected/events/{id}", withAuth(http.HandlerFunc(s.eventHandler.UpdateEvent)))
	protectedRoutes.Handle("DELETE /api/protected/events/{id}", withAuth(http.HandlerFunc(s.eventHandler.DeleteEvent)))
	protectedRoutes.Handle("POST /api/protected/events/{id}/complete", withAuth(http.HandlerFunc(s.eventHandler.CompleteEvent)))

	protectedRoutes.Handle("GET /api/protected/balances/{mode}", withAuth(http.HandlerFunc(s.balanceHandler.GetBalance)))
	protectedRoutes.Handle("PUT /api/protected/balances/{mode}", withAuth(http.HandlerFunc(s.balanceHandler.SetBalance)))
	protectedRoutes.Handle("GET /api/protected/summary/monthly", withAuth(http.HandlerFunc(s.balanceHandler.GetMonthlySummary)))

	// Refresh token routes
	refreshTokenRoutes := http.NewServeMux()
	refreshTokenRoutes.Handle("PUT /api/refresh/token", s.authService.JWTRefreshTokenMiddleware()(http.HandlerFunc(s.authHandler.RefreshAccessToken)))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/api/refresh/", refreshTokenRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	store, err := storage.NewPostgresStore(dbService.DB)
	if err != nil {
		log.Fatalf("Could not initialize key-value store: %v", err)
	}

	userRepo := user.NewRepository(store)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)

	jwtManager := auth.NewJWTManager()
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService)

	ledgerRepo := infrastructure.NewKVLedgerRepository(store)
	ledgerService := application.NewLedgerService(ledgerRepo)

	transactionHandler := interfaces.NewTransactionHandler(ledgerService)
	eventHandler := interfaces.NewEventHandler(ledgerService)
	balanceHandler := interfaces.NewBalanceHandler(ledgerService)

	server := NewServer(dbService, authService, authHandler, userHandler, transactionHandler, eventHandler, balanceHandler)
	server.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	handler := loggingMiddleware(server.router)
	log.Printf("Server starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
