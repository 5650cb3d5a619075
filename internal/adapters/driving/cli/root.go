// Package cli provides the cobra command-line interface for Matcha.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	fileconfig "github.com/matcha-labs/matcha-mcp/internal/adapters/driven/config/file"
	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/clock"
	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/embedding/openai"
	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/events"
	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/id"
	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/llm/anthropic"
	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/scoring"
	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/storage/memory"
	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/storage/sqlite"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
	"github.com/matcha-labs/matcha-mcp/internal/core/services"
	"github.com/matcha-labs/matcha-mcp/internal/logger"
)

// version is the CLI version, overridable at build time.
var version = "0.1.0"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// Wired services, built once per invocation.
var (
	configStore driven.ConfigStore
	sqlStore    *sqlite.Store

	profileService   *services.ProfileService
	requestService   *services.RequestService
	matchingService  *services.MatchingService
	interestService  *services.InterestService
	chatService      *services.ChatService
	dealService      *services.DealService
	insightService   *services.InsightService
	contractService  *services.ContractService
	analyticsService *services.AnalyticsService
	sweeper          *services.Sweeper
)

var rootCmd = &cobra.Command{
	Use:   "matcha",
	Short: "Brand-creator collaboration marketplace MCP server",
	Long: `Matcha is an MCP server for a brand-creator collaboration marketplace.

It matches creators to brand campaigns with embedding similarity, tracks
interest, runs 48-hour negotiation chat windows, finalizes deals through
mutual confirmation and renders contracts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardownServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.matcha)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires stores, adapters and domain services from config.
func initServices() error {
	logger.Section("init")

	cfg, err := fileconfig.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = cfg
	logger.Debug("config loaded from %s", cfg.Path())

	var (
		profiles  driven.ProfileStore
		requests  driven.RequestStore
		interests driven.InterestStore
		chats     driven.ChatStore
		deals     driven.DealStore
		contracts driven.ContractStore
	)

	switch backend := cfg.GetString("storage.backend"); backend {
	case "memory":
		logger.Debug("using in-memory storage")
		profiles = memory.NewProfileStore()
		requests = memory.NewRequestStore()
		interests = memory.NewInterestStore()
		chats = memory.NewChatStore()
		deals = memory.NewDealStore()
		contracts = memory.NewContractStore()
	case "", "sqlite":
		store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		sqlStore = store
		logger.Debug("using sqlite storage at %s", store.Path())
		profiles = store.ProfileStore()
		requests = store.RequestStore()
		interests = store.InterestStore()
		chats = store.ChatStore()
		deals = store.DealStore()
		contracts = store.ContractStore()
	default:
		return fmt.Errorf("unknown storage backend %q", backend)
	}

	var embedder driven.EmbeddingService
	if key := cfg.GetString("embedding.api_key"); key != "" {
		embedder, err = openai.NewEmbeddingService(openai.Config{
			APIKey:     key,
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
		if err != nil {
			return fmt.Errorf("configuring embedding service: %w", err)
		}
		logger.Debug("embedding service: %s", embedder.ModelName())
	} else {
		logger.Debug("no embedding API key, matching falls back to tag overlap")
	}

	var generator driven.TextGenerator
	if key := cfg.GetString("llm.api_key"); key != "" {
		generator, err = anthropic.NewTextGenerator(anthropic.Config{
			APIKey:  key,
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
		})
		if err != nil {
			return fmt.Errorf("configuring text generator: %w", err)
		}
		logger.Debug("text generator: %s", generator.ModelName())
	} else {
		logger.Debug("no LLM API key, ROI analysis and contracts unavailable")
	}

	sysClock := clock.System{}
	ids := id.Generator{}
	revision := services.NewRevision()
	sink := events.NewLog()

	profileService = services.NewProfileService(profiles, embedder, sysClock, ids, revision)
	requestService = services.NewRequestService(requests, embedder, sysClock, ids, revision)
	matchingService = services.NewMatchingService(requests, profiles, scoring.NewCosine(), sysClock, revision)
	interestService = services.NewInterestService(interests, requests, sysClock, ids)
	chatService = services.NewChatService(chats, sysClock, ids)
	dealService = services.NewDealService(deals, requests, sink, sysClock, ids, revision)
	insightService = services.NewInsightService(profiles, requests, generator, sysClock)
	contractService = services.NewContractService(deals, contracts, generator, sysClock, ids)
	analyticsService = services.NewAnalyticsService(profiles, requests, interests, chats, deals, sysClock)

	if days := cfg.GetInt("deal.timeout_days"); days > 0 {
		dealService.SetTimeout(time.Duration(days) * 24 * time.Hour)
	}

	sweeper = services.NewSweeper(chatService, dealService, services.DefaultSweepInterval)

	return nil
}

// teardownServices releases resources held by the wiring.
func teardownServices() error {
	if sqlStore != nil {
		if err := sqlStore.Close(); err != nil {
			return fmt.Errorf("closing storage: %w", err)
		}
		sqlStore = nil
	}
	return nil
}
