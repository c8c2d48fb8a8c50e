package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/StackOverflowed512/flyer-agent/internal/config"
	"github.com/StackOverflowed512/flyer-agent/internal/core"
	"github.com/StackOverflowed512/flyer-agent/internal/providers/events"
	"github.com/StackOverflowed512/flyer-agent/internal/providers/llm"
	"github.com/StackOverflowed512/flyer-agent/internal/providers/mail"
	"github.com/StackOverflowed512/flyer-agent/internal/service/assistant"
	"github.com/StackOverflowed512/flyer-agent/internal/service/extract"
	"github.com/StackOverflowed512/flyer-agent/internal/service/flyer"
	"github.com/StackOverflowed512/flyer-agent/internal/service/intake"
	"github.com/StackOverflowed512/flyer-agent/internal/storage/postgres"
	"github.com/StackOverflowed512/flyer-agent/internal/storage/sqlite"
	"github.com/StackOverflowed512/flyer-agent/internal/transport/telegram"
	"github.com/StackOverflowed512/flyer-agent/internal/transport/web"
	"github.com/StackOverflowed512/flyer-agent/pkg/log"
	"github.com/StackOverflowed512/flyer-agent/pkg/srv"
	"github.com/joho/godotenv"
)

type customerStore interface {
	core.CustomerRepository
	core.CustomerLister
}

// components is the wired intake core shared by every command.
type components struct {
	appCfg       *config.AppConfig
	catalog      *core.Catalog
	customers    customerStore
	messages     *sqlite.MessagesRepo
	extractor    *extract.Coordinator
	sender       *flyer.Sender
	orchestrator *intake.Orchestrator

	// closers, in start order
	services []srv.Service
}

// initEnv loads the runtime .env, then ./.env. Variables already set win.
func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)

	for _, envFile := range []string{filepath.Join(runtimePath, ".env"), ".env"} {
		if _, err := os.Stat(envFile); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := godotenv.Load(envFile); err != nil {
			logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
			return err
		}
		logger.Debug().Str("path", envFile).Msg("loaded .env file")
	}
	return nil
}

func loadAppConfig(ctx context.Context) (*config.AppConfig, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}
	return config.LoadAppConfig()
}

// initStorage opens the customer store and, when withMessages is set, the
// SQLite transcript store Telegram needs even when customers live in Postgres.
func initStorage(ctx context.Context, cfg *config.AppConfig, withMessages bool) (customerStore, *sqlite.MessagesRepo, []srv.Service, error) {
	var (
		customers customerStore
		messages  *sqlite.MessagesRepo
		services  []srv.Service
	)

	if cfg.UsePostgres() {
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		customers = store
		services = append(services, srv.NewCleanupFunc(store.Close))
	}

	if customers == nil || withMessages {
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			srv.Shutdown(ctx, services)
			return nil, nil, nil, err
		}
		services = append(services, srv.NewCleanup(db.Close))
		if customers == nil {
			customers = sqlite.NewCustomersRepo(db)
		}
		messages = sqlite.NewMessagesRepo(db)
	}

	return customers, messages, services, nil
}

func initFlyerSender(ctx context.Context, cfg *config.AppConfig, catalog *core.Catalog) (*flyer.Sender, error) {
	smtpCfg, err := config.LoadSMTPConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to parse SMTP config: %w", err)
	}
	if !smtpCfg.HasCredentials() {
		log.FromCtx(ctx).Warn().Msg("SENDER_EMAIL or SENDER_PASSWORD not set, flyer delivery will fail")
	}
	return flyer.NewSender(mail.NewSMTP(smtpCfg), catalog, cfg.GetFlyersDir()), nil
}

func initAssistant(ctx context.Context, cfg *config.AppConfig, catalog *core.Catalog) (*assistant.Client, error) {
	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM config: %w", err)
	}

	provider, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		return nil, err
	}

	var opts []assistant.Option
	if cfg.MaxPromptTokens > 0 {
		opts = append(opts, assistant.WithBudget(assistant.NewBudget(cfg.MaxPromptTokens)))
	}
	return assistant.NewClient(provider, catalog, opts...), nil
}

func initEvents(ctx context.Context, cfg *config.AppConfig) ([]intake.Option, []srv.Service, error) {
	if cfg.NATSURL == "" {
		return nil, nil, nil
	}

	pub, err := events.NewNATSPublisher(ctx, cfg.NATSURL, cfg.NATSToken)
	if err != nil {
		return nil, nil, err
	}
	return []intake.Option{intake.WithEvents(pub)}, []srv.Service{srv.NewCleanup(pub.Close)}, nil
}

func buildCore(ctx context.Context, withMessages bool) (*components, error) {
	cfg, err := loadAppConfig(ctx)
	if err != nil {
		return nil, err
	}

	c := &components{
		appCfg:    cfg,
		catalog:   core.DefaultCatalog(),
		extractor: extract.Default(),
	}

	fail := func(err error) (*components, error) {
		srv.Shutdown(ctx, c.services)
		return nil, err
	}

	var storageServices []srv.Service
	c.customers, c.messages, storageServices, err = initStorage(ctx, cfg, withMessages)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize storage: %w", err))
	}
	c.services = append(c.services, storageServices...)

	if c.sender, err = initFlyerSender(ctx, cfg, c.catalog); err != nil {
		return fail(err)
	}

	client, err := initAssistant(ctx, cfg, c.catalog)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize LLM provider: %w", err))
	}

	opts, eventServices, err := initEvents(ctx, cfg)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize events: %w", err))
	}
	c.services = append(c.services, eventServices...)

	c.orchestrator = intake.NewOrchestrator(client, c.extractor, c.catalog, c.sender, c.customers, opts...)
	return c, nil
}

// initTransports appends the long-running transports for `serve`.
func initTransports(ctx context.Context, c *components) ([]srv.Service, error) {
	var services []srv.Service

	server, err := web.NewServer(ctx, c.appCfg, c.orchestrator)
	if err != nil {
		return nil, err
	}
	services = append(services, server)

	if c.appCfg.IsTelegramSelected() {
		tgCfg, err := config.LoadTelegramConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to parse Telegram config: %w", err)
		}
		bot, err := telegram.NewBot(ctx, tgCfg, c.orchestrator, c.messages, c.appCfg.GetContextWindowSize())
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}
