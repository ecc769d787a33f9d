package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Abdelmagid1892/translation-office-app/internal/config"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/adapter"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/adapters/extract"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/adapters/mail"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/adapters/render"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/adapters/storage"
	pg "github.com/Abdelmagid1892/translation-office-app/internal/infra/db/postgres"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/logging"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/metrics"
	red "github.com/Abdelmagid1892/translation-office-app/internal/infra/redis"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/sched"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/web"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/worker"
	"github.com/Abdelmagid1892/translation-office-app/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool := pg.MustConnectPostgres(cfg.Database.URL)
	defer pool.Close()
	txManager := pg.NewTxManager(pool)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	locker := red.NewLocker(redisClient)
	limiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	jobRepo := pg.NewJobRepo(pool)
	quoteRepo := pg.NewQuoteRepo(pool)
	rateRepo := pg.NewRateRepoCacheDecorator(pg.NewRateRepo(pool), redisClient)
	deliverableRepo := pg.NewDeliverableRepo(pool)
	chatRepo := pg.NewChatMessageRepo(pool)
	glossaryRepo := pg.NewGlossaryRepo(pool)
	invoiceRepo := pg.NewInvoiceRepo(pool)
	notifLogRepo := pg.NewNotificationLogRepo(pool)
	auditRepo := pg.NewAuditLogRepo(pool)

	// ---- Adapters ----
	fileStorage, err := storage.NewLocalStorage(cfg.Storage.Dir)
	if err != nil {
		logger.Fatal().Err(err).Msg("storage")
	}
	extractor := extract.NewExtractor()
	renderer := render.NewPDFRenderer("Translation Office")

	var mailTransport adapter.MailTransport
	if cfg.Mail.Host != "" {
		mailTransport = mail.NewSMTPMail(cfg.Mail, logger)
	} else {
		logger.Warn().Msg("mail.host not set, notifications go to the log only")
		mailTransport = mail.NewNoopMail()
	}

	// ---- Notification pipeline ----
	notifUC := usecase.NewNotificationUseCase(jobRepo, userRepo, notifLogRepo, mailTransport, logger)
	workerPool := worker.NewPool(cfg.Worker.Notifiers, cfg.Worker.QueueSize)
	workerPool.Start(ctx)
	defer workerPool.Stop()
	dispatcher := worker.NewDispatcher(workerPool, notifUC, logger)

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo)
	rateUC := usecase.NewRateUseCase(rateRepo)
	glossaryUC := usecase.NewGlossaryUseCase(glossaryRepo)
	jobUC := usecase.NewJobUseCase(jobRepo, deliverableRepo, userRepo, auditRepo, txManager, locker, fileStorage, dispatcher, logger)
	quoteUC := usecase.NewQuoteUseCase(quoteRepo, jobRepo, rateRepo, auditRepo, txManager, locker, dispatcher, logger)
	intakeUC := usecase.NewIntakeUseCase(jobRepo, auditRepo, txManager, extractor, fileStorage, quoteUC, logger)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, quoteRepo, jobRepo, userRepo, auditRepo, txManager, locker, renderer, fileStorage, jobUC, dispatcher, logger)
	qaUC := usecase.NewQAUseCase(deliverableRepo, glossaryRepo, jobUC, logger)
	statsUC := usecase.NewStatsUseCase(userRepo, jobRepo, invoiceRepo)

	hub := web.NewHub(logger)
	chatUC := usecase.NewChatUseCase(chatRepo, userRepo, jobUC, txManager, hub, logger)

	// ---- Schedulers ----
	reminder := sched.NewReminderWorker(cfg.Scheduler.ReminderInterval, cfg.Scheduler.ReminderWindow, notifUC, logger)
	go func() { _ = reminder.Run(ctx) }()
	retrier := sched.NewRetryWorker(cfg.Scheduler.RetryInterval, cfg.Scheduler.RetryBatch, notifUC, logger)
	go func() { _ = retrier.Run(ctx) }()

	// ---- Public API ----
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, !cfg.Runtime.Dev, "", cfg.Auth.TokenTTL)
	server := web.NewServer(web.ServerDeps{
		UserUC:     userUC,
		IntakeUC:   intakeUC,
		JobUC:      jobUC,
		QuoteUC:    quoteUC,
		InvoiceUC:  invoiceUC,
		ChatUC:     chatUC,
		QAUC:       qaUC,
		RateUC:     rateUC,
		GlossaryUC: glossaryUC,
		StatsUC:    statsUC,
		Auth:       auth,
		Hub:        hub,
		Limiter:    limiter,
		MaxUpload:  cfg.Server.MaxUploadBytes,
		Logger:     logger,
	})

	apiSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", apiSrv.Addr).Msg("api listening")
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("api server")
		}
	}()

	// ---- Admin surface (metrics, health) ----
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		stat := pool.Stat()
		metrics.SetDBPoolStats(stat.TotalConns(), stat.IdleConns(), stat.AcquiredConns())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	adminSrv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Admin.Port), Handler: adminMux}
	go func() {
		logger.Info().Str("addr", adminSrv.Addr).Msg("admin listening")
		if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin server")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()
	_ = apiSrv.Shutdown(context.Background())
	_ = adminSrv.Shutdown(context.Background())
}
