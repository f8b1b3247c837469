package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xXAMIRAYA/PSynthese/internal/config"
	"github.com/xXAMIRAYA/PSynthese/internal/handler"
	"github.com/xXAMIRAYA/PSynthese/internal/logging"
	"github.com/xXAMIRAYA/PSynthese/internal/mailer"
	"github.com/xXAMIRAYA/PSynthese/internal/realtime"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
	"github.com/xXAMIRAYA/PSynthese/internal/service"
	"github.com/xXAMIRAYA/PSynthese/internal/storage"
	"github.com/xXAMIRAYA/PSynthese/pkg/auth"

	"log/slog"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		logging.Setup("")
		logging.Fatal("config load failed", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("database connect failed", "error", err)
	}
	defer pool.Close()

	profileRepo := repository.NewPgProfileRepository(pool)
	campaignRepo := repository.NewPgCampaignRepository(pool)
	donationRepo := repository.NewPgDonationRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	updateRepo := repository.NewPgCampaignUpdateRepository(pool)

	sessionSecret := auth.SessionSecretBytes(cfg.SessionSecret)

	mail := mailer.New(mailer.Config{
		APIURL:  cfg.Mailer.APIURL,
		APIKey:  cfg.Mailer.APIKey,
		From:    cfg.Mailer.From,
		Timeout: cfg.Mailer.Timeout,
	})

	authService := service.NewAuthService(profileRepo, mail, sessionSecret, cfg.FrontendURL)
	campaignService := service.NewCampaignService(campaignRepo, updateRepo)
	donationService := service.NewDonationService(donationRepo, campaignRepo)
	chatService := service.NewChatService(profileRepo, messageRepo)
	adminService := service.NewAdminService(profileRepo, campaignRepo, donationRepo)

	// Realtime message feed: a dedicated LISTEN connection republishes
	// database inserts to SSE subscribers.
	broker := realtime.NewBroker()
	listenerCtx, stopListener := context.WithCancel(ctx)
	defer stopListener()
	listener := realtime.NewListener(cfg.DatabaseURL, broker, slog.Default())
	go listener.Run(listenerCtx)

	store := storage.NewLocalStorage(cfg.UploadsDir, "/uploads")

	h := handler.New(pool, cfg.FrontendURL)
	authHandler := handler.NewAuthHandler(authService, handler.AuthConfig{
		GoogleClientID:     cfg.Google.ClientID,
		GoogleClientSecret: cfg.Google.ClientSecret,
		GoogleRedirectPath: "/api/auth/google/callback",
		BackendURL:         os.Getenv("BACKEND_URL"),
		SessionSecret:      cfg.SessionSecret,
		FrontendURL:        cfg.FrontendURL,
		SecureCookies:      os.Getenv("ENV") == "production",
	})
	meHandler := handler.NewMeHandler(profileRepo, messageRepo)
	campaignHandler := handler.NewCampaignHandler(campaignService)
	donationHandler := handler.NewDonationHandler(donationService)
	chatHandler := handler.NewChatHandler(chatService, broker)
	adminHandler := handler.NewAdminHandler(adminService, donationService)
	imageHandler := handler.NewImageHandler(store, campaignService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/auth/password-reset", authHandler.RequestPasswordReset)
	mux.HandleFunc("POST /api/auth/password-reset/confirm", authHandler.ResetPassword)
	mux.HandleFunc("GET /api/auth/google/login", authHandler.GoogleLoginURL)
	mux.HandleFunc("GET /api/auth/google/callback", authHandler.GoogleCallback)

	// Public campaign reads.
	mux.HandleFunc("GET /api/campaigns", campaignHandler.List)
	mux.HandleFunc("GET /api/campaigns/{id}", campaignHandler.Get)
	mux.HandleFunc("GET /api/campaigns/{id}/donations", donationHandler.ListByCampaign)
	mux.HandleFunc("GET /api/campaigns/{id}/updates", campaignHandler.ListUpdates)

	// Authenticated endpoints. wrapAuth verifies the session cookie and
	// loads the profile role; DevAuth keeps local development usable
	// without a login flow.
	loadRole := handler.LoadRole(profileRepo)
	wrapAuth := func(next http.Handler) http.Handler {
		if cfg.AuthRequired {
			return auth.RequireAuth(sessionSecret)(loadRole(next))
		}
		return auth.DevAuth(loadRole(next))
	}
	mux.Handle("GET /api/me", wrapAuth(http.HandlerFunc(meHandler.Me)))
	mux.Handle("PATCH /api/me", wrapAuth(http.HandlerFunc(meHandler.UpdateMe)))
	mux.Handle("GET /api/me/campaigns", wrapAuth(http.HandlerFunc(campaignHandler.MyCampaigns)))
	mux.Handle("GET /api/me/donations", wrapAuth(http.HandlerFunc(donationHandler.MyDonations)))
	mux.Handle("GET /api/me/donations/stats", wrapAuth(http.HandlerFunc(donationHandler.MyStats)))

	mux.Handle("POST /api/campaigns", wrapAuth(http.HandlerFunc(campaignHandler.Create)))
	mux.Handle("PUT /api/campaigns/{id}", wrapAuth(http.HandlerFunc(campaignHandler.Update)))
	mux.Handle("PATCH /api/campaigns/{id}/status", wrapAuth(http.HandlerFunc(campaignHandler.PatchStatus)))
	mux.Handle("DELETE /api/campaigns/{id}", wrapAuth(http.HandlerFunc(campaignHandler.Delete)))
	mux.Handle("POST /api/campaigns/{id}/updates", wrapAuth(http.HandlerFunc(campaignHandler.CreateUpdate)))
	mux.Handle("POST /api/campaigns/{id}/donations", wrapAuth(http.HandlerFunc(donationHandler.Create)))
	mux.Handle("POST /api/campaigns/{id}/image", wrapAuth(http.HandlerFunc(imageHandler.Upload)))
	mux.Handle("DELETE /api/campaigns/{id}/image", wrapAuth(http.HandlerFunc(imageHandler.Delete)))

	mux.Handle("GET /api/chat/contacts", wrapAuth(http.HandlerFunc(chatHandler.Contacts)))
	mux.Handle("GET /api/chat/conversations/{id}", wrapAuth(http.HandlerFunc(chatHandler.Conversation)))
	mux.Handle("POST /api/chat/messages", wrapAuth(http.HandlerFunc(chatHandler.Send)))
	mux.Handle("POST /api/chat/conversations/{id}/read", wrapAuth(http.HandlerFunc(chatHandler.MarkRead)))
	mux.Handle("POST /api/chat/read-all", wrapAuth(http.HandlerFunc(chatHandler.MarkAllRead)))
	mux.Handle("GET /api/chat/stream", wrapAuth(http.HandlerFunc(chatHandler.Stream)))

	// Admin routes.
	wrapAdmin := func(next http.Handler) http.Handler {
		return wrapAuth(handler.RequireAdmin(next))
	}
	mux.Handle("GET /api/admin/users", wrapAdmin(http.HandlerFunc(adminHandler.ListUsers)))
	mux.Handle("PATCH /api/admin/users/{id}/suspend", wrapAdmin(http.HandlerFunc(adminHandler.Suspend)))
	mux.Handle("GET /api/admin/donations/pending", wrapAdmin(http.HandlerFunc(adminHandler.ListPendingDonations)))
	mux.Handle("PATCH /api/admin/donations/{id}/validate", wrapAdmin(http.HandlerFunc(adminHandler.ValidateDonation)))
	mux.Handle("GET /api/admin/stats", wrapAdmin(http.HandlerFunc(adminHandler.Stats)))

	rateLimiter := handler.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	chain := h.CORS(handler.SecurityHeaders(rateLimiter.Middleware(handler.RequestLogger(mux))))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopListener()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
