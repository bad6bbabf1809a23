package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/quoted/internal/common/clock"
	"github.com/KirkDiggler/quoted/internal/common/uuid"
	"github.com/KirkDiggler/quoted/internal/config"
	"github.com/KirkDiggler/quoted/internal/handlers/discord"
	"github.com/KirkDiggler/quoted/internal/logging"
	"github.com/KirkDiggler/quoted/internal/random"
	quoteRepo "github.com/KirkDiggler/quoted/internal/repositories/quote"
	sessionRepo "github.com/KirkDiggler/quoted/internal/repositories/session"
	tenantRepo "github.com/KirkDiggler/quoted/internal/repositories/tenant"
	"github.com/KirkDiggler/quoted/internal/services/game"
	"github.com/KirkDiggler/quoted/internal/services/messaging"
	"github.com/KirkDiggler/quoted/internal/services/quote"
	"github.com/KirkDiggler/quoted/internal/services/tenant"
	"github.com/KirkDiggler/quoted/internal/services/token"
	"github.com/KirkDiggler/quoted/internal/services/visibility"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to read .env")
	}

	logCfg, err := config.LoadLog()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load log config")
	}
	logging.Init(logCfg)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
	}

	// Initialize repositories
	tenants, err := tenantRepo.NewRedis(&tenantRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create tenant repository")
	}

	quotes, err := quoteRepo.NewRedis(&quoteRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create quote repository")
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
		TTL:         cfg.Game.SessionTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session repository")
	}

	// Shared helpers
	rng := random.New(nil)
	clk := clock.New()
	ids := uuid.New()

	tokens, err := token.New(&token.Config{
		Random:      rng,
		Length:      cfg.Game.TokenLength,
		MaxAttempts: cfg.Game.TokenMaxAttempts,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token generator")
	}

	// Initialize services
	resolver, err := visibility.New(&visibility.Config{TenantRepo: tenants})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create visibility resolver")
	}

	tenantSvc, err := tenant.New(&tenant.Config{
		TenantRepo: tenants,
		Clock:      clk,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create tenant service")
	}

	quoteSvc, err := quote.New(&quote.Config{
		QuoteRepo:      quotes,
		Visibility:     resolver,
		TokenGenerator: tokens,
		Random:         rng,
		Clock:          clk,
		UUIDGenerator:  ids,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create quote service")
	}

	gameSvc, err := game.New(&game.Config{
		SessionRepo:        sessions,
		QuoteService:       quoteSvc,
		TokenGenerator:     tokens,
		Random:             rng,
		Clock:              clk,
		UUIDGenerator:      ids,
		DecoyCount:         cfg.Game.DecoyCount,
		MaxConflictRetries: cfg.Game.MaxConflictRetries,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game service")
	}

	messagingSvc, err := messaging.New(&messaging.Config{Random: rng})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create messaging service")
	}

	// The command needs guild names from the bot's state cache, the bot needs the command
	var bot *discord.Bot

	quoteCmd, err := discord.NewQuoteCommand(&discord.QuoteCommandConfig{
		GameService:      gameSvc,
		QuoteService:     quoteSvc,
		TenantService:    tenantSvc,
		MessagingService: messagingSvc,
		GuildInfo: func(guildID string) (string, int) {
			return bot.GuildInfo(guildID)
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create quote command")
	}

	bot, err = discord.New(&discord.Config{
		Token:         cfg.Discord.Token,
		ApplicationID: cfg.Discord.ApplicationID,
		GuildID:       cfg.Discord.GuildID,
		Commands:      []discord.CommandHandler{quoteCmd},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Discord bot")
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start Discord bot")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Error().Err(err).Msg("Error stopping bot")
	}

	if err := redisClient.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing Redis client")
	}

	log.Info().Msg("Bot has been shut down")
}
