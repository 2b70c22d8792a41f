package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/http/router"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/infra/storage"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[CONFIG] .env not loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Database
	db, err := database.NewDBConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("[DATABASE] %v", err)
	}
	defer db.Close()

	dialect := database.Dialect{Driver: cfg.Database.Driver}
	if err := database.Migrate(ctx, db, dialect); err != nil {
		log.Fatalf("[DATABASE] migrate: %v", err)
	}

	// 2. Repositories and stores
	leadRepo := database.NewLeadRepository(db, dialect)
	files, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("[STORAGE] %v", err)
	}

	// 3. Notifier
	var rabbitConn *amqp091.Connection
	notifier, rabbit := buildNotifier(ctx, cfg)
	if rabbit != nil {
		defer rabbit.Close()
		rabbitConn = rabbit.Conn
	}

	// 4. Use cases
	submitUC := usecase.NewSubmitLeadUseCase(leadRepo, files, notifier, cfg.Operator.Email)
	submitUC.OnNotifyError = func(to string, err error) {
		middleware.RecordIntegrationError("notifier")
		log.Printf("[NOTIFY] delivery to %s failed: %v", to, err)
	}
	listUC := usecase.NewListLeadsUseCase(leadRepo)
	advanceUC := usecase.NewAdvanceLeadStateUseCase(leadRepo)

	// 5. Handlers and router
	r := router.New(cfg, router.Handlers{
		Lead:   handlers.NewLeadHandler(submitUC, listUC, advanceUC, cfg.MaxUploadBytes),
		Health: handlers.NewHealthHandler(db, rabbitConn, version),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("[HTTP] lead intake %s listening on %s (driver=%s notifier=%s)",
			version, srv.Addr, cfg.Database.Driver, cfg.Notifier)
		log.Printf("[HTTP]   POST  /leads/        public submission")
		log.Printf("[HTTP]   GET   /leads/        operator only")
		log.Printf("[HTTP]   PATCH /leads/{id}    operator only")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[HTTP] %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[HTTP] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[HTTP] shutdown: %v", err)
	}

	// pending notifications run on their own timeout
	submitUC.Wait()
	log.Println("[HTTP] stopped")
}

// buildNotifier returns the configured Notifier. With the rabbitmq notifier a
// worker is started in-process that drains the queue through SMTP when a mail
// host is configured, or through the log otherwise.
func buildNotifier(ctx context.Context, cfg *config.Config) (usecase.Notifier, *queue.RabbitMQ) {
	logNotifier := mail.NewLogNotifier(log.Default())

	switch cfg.Notifier {
	case config.NotifierSMTP:
		return mail.NewEmailSender(cfg.Mail), nil

	case config.NotifierRabbitMQ:
		rabbit, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatalf("[QUEUE] %v", err)
		}

		var deliverer queue.Deliverer = logNotifier
		if cfg.Mail.Host != "" {
			deliverer = mail.NewEmailSender(cfg.Mail)
		}

		worker := queue.NewWorker(rabbit.Ch, deliverer)
		go func() {
			if err := worker.Start(ctx, queue.QueueName); err != nil {
				middleware.RecordIntegrationError("rabbitmq")
				log.Printf("[QUEUE] worker stopped: %v", err)
			}
		}()

		return queue.NewProducer(rabbit.Ch), rabbit

	default:
		return logNotifier, nil
	}
}
