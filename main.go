package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"finance-advisor/config"
	httpLayer "finance-advisor/http"
	"finance-advisor/repository"
	"finance-advisor/routing"
	"finance-advisor/service"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "finance-advisor",
	Short: "Personal finance advisory API",
	Long:  "Routes user queries to a rule-based financial advisor or an AI chat proxy.",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "config.toml", "Path to config file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	cache, closeCache := buildCache(cfg)
	defer closeCache()

	profiles := buildProfiles(cfg)
	history, closeHistory := buildHistory(cfg)
	defer closeHistory()

	textgen := buildTextGenerator(cfg)
	if textgen != nil {
		log.Printf("Text generation provider: %s", textgen.Name())
	} else {
		log.Println("Text generation disabled, serving rule-based advice only")
	}

	router := routing.Default()

	advisorService := service.NewAdvisorService(router, profiles, cache, history, textgen)
	chatService := service.NewChatService(router, textgen)
	investmentService := service.NewInvestmentService(profiles)

	advisorHandler := httpLayer.NewAdvisorHandler(advisorService)
	chatHandler := httpLayer.NewChatHandler(chatService)
	investmentHandler := httpLayer.NewInvestmentHandler(investmentService)
	wsHandler := httpLayer.NewWSHandler(advisorService, chatService)

	var verifier httpLayer.TokenVerifier
	if len(cfg.Auth.Tokens) > 0 {
		verifier = httpLayer.NewStaticTokenVerifier(cfg.Auth.Tokens)
	}

	rateLimiter := httpLayer.NewRateLimiter(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.IntervalSec)*time.Second,
	)
	defer rateLimiter.Stop()

	protect := func(h http.Handler) http.Handler {
		return httpLayer.RequestIDMiddleware(
			httpLayer.AuthMiddleware(verifier,
				httpLayer.RateLimitMiddleware(rateLimiter, h)))
	}

	mux := http.NewServeMux()
	mux.Handle("/advisor", protect(http.HandlerFunc(advisorHandler.Advise)))
	mux.Handle("/chat", protect(http.HandlerFunc(chatHandler.Chat)))
	mux.Handle("/investments/plan", protect(http.HandlerFunc(investmentHandler.Plan)))
	mux.Handle("/ws", httpLayer.AuthMiddleware(verifier, http.HandlerFunc(wsHandler.Serve)))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("API listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return err
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// buildCache prefers Redis when configured and falls back to the in-process
// cache otherwise.
func buildCache(cfg config.Config) (repository.CacheRepository, func()) {
	if cfg.Redis.Addr != "" {
		cache := repository.NewRedisCache(cfg.Redis.Addr)
		return cache, func() { cache.Close() }
	}

	cache, err := repository.NewRistrettoCache()
	if err != nil {
		log.Printf("In-process cache unavailable: %v (caching disabled)", err)
		return repository.NewMockCache(), func() {}
	}
	return cache, func() { cache.Close() }
}

func buildProfiles(cfg config.Config) repository.ProfileRepository {
	if cfg.Supabase.URL != "" {
		return repository.NewSupabaseRepository(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	}
	log.Println("Supabase not configured, using in-memory profiles")
	return repository.NewMemoryProfileRepository()
}

func buildHistory(cfg config.Config) (repository.AdviceRepository, func()) {
	if cfg.History.Path == "" {
		return repository.NewMemoryAdviceRepository(), func() {}
	}

	history, err := repository.OpenSQLiteAdviceRepository(cfg.History.Path)
	if err != nil {
		log.Printf("Opening history db: %v (falling back to in-memory history)", err)
		return repository.NewMemoryAdviceRepository(), func() {}
	}
	return history, func() { history.Close() }
}

func buildTextGenerator(cfg config.Config) service.TextGenerator {
	switch cfg.AI.Provider {
	case "anthropic":
		if cfg.AI.AnthropicKey == "" {
			return nil
		}
		return service.NewAnthropicService(cfg.AI.AnthropicKey, cfg.AI.Model)
	case "gemini":
		if cfg.AI.GeminiKey == "" {
			return nil
		}
		return service.NewGeminiService(cfg.AI.GeminiKey, cfg.AI.Model, 15*time.Second)
	case "", "none":
		return nil
	default:
		log.Printf("Unknown AI provider %q, text generation disabled", cfg.AI.Provider)
		return nil
	}
}
