package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/bookingbot/server/internal/assistant/graph"
	"github.com/bookingbot/server/internal/assistant/graph/sessions"
	"github.com/bookingbot/server/internal/assistant/model"
	"github.com/bookingbot/server/internal/assistant/nlu"
	"github.com/bookingbot/server/internal/assistant/repo"
	"github.com/bookingbot/server/internal/schedule"
	logx "github.com/bookingbot/server/pkg/logger"
	pkgredis "github.com/bookingbot/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the booking assistant,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure
	Redis pkgredis.Config

	// Assistant configs
	Bot        model.BotConfig
	Classifier model.ClassifierConfig
	Schedule   model.ScheduleConfig
	Session    model.SessionConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init()

	sessionRepo, cleanup, err := buildSessionRepo(envCfg)
	if err != nil {
		log.Fatalf("Failed to initialise session backend: %v", err)
	}
	defer cleanup()

	runner, err := graph.BuildTurnGraph(ctx, graph.Config{
		Classifier:  envCfg.Classifier,
		Normalizer:  nlu.NewNormalizerFromFile(envCfg.Bot.TypoCorrectionsPath),
		Calendar:    schedule.NewStore(envCfg.Schedule),
		SessionRepo: sessionRepo,
	})
	if err != nil {
		log.Fatalf("Failed to build turn graph: %v", err)
	}

	runREPL(ctx, runner, sessions.NewManager(sessionRepo), envCfg.Bot.DefaultUserID)
}

// buildSessionRepo selects the session backend from config. The returned
// cleanup closes the Redis connection when one was opened.
func buildSessionRepo(cfg AppConfig) (model.SessionRepository, func(), error) {
	if cfg.Session.Backend != "redis" {
		return repo.NewMemorySessionRepository(), func() {}, nil
	}

	ttl, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid SESSION_TTL %q: %w", cfg.Session.TTL, err)
	}

	rdb, err := cfg.Redis.New()
	if err != nil {
		return nil, nil, fmt.Errorf("initialise redis client: %w", err)
	}
	return repo.NewRedisSessionRepository(rdb, ttl), func() { rdb.Close() }, nil
}

func runREPL(ctx context.Context, runner graph.Runner, mgr *sessions.Manager, userID string) {
	sessionID := uuid.NewString()

	fmt.Println("Booking Assistant - Interactive Mode")
	fmt.Println("Type 'quit' to exit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if lower := strings.ToLower(input); lower == "quit" || lower == "exit" {
			result, err := runner.ProcessTurn(ctx, model.TurnInput{
				SessionID: sessionID,
				UserID:    userID,
				Utterance: "goodbye",
			})
			if err == nil {
				fmt.Printf("\nBot: %s\n", result.Response.Message)
			}
			if err := mgr.End(ctx, sessionID); err != nil {
				logx.Warn().Err(err).Str("session_id", sessionID).Msg("failed to discard session")
			}
			break
		}

		result, err := runner.ProcessTurn(ctx, model.TurnInput{
			SessionID: sessionID,
			UserID:    userID,
			Utterance: input,
		})
		if err != nil {
			logx.Error().Err(err).Str("session_id", sessionID).Msg("turn failed")
			fmt.Println("\nBot: Something went wrong on my side. Please try again.")
			continue
		}

		fmt.Printf("\nBot: %s\n", result.Response.Message)
		fmt.Println()
	}
}
