package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/4lin107/xiaozhi-assistant/internal/actions"
	"github.com/4lin107/xiaozhi-assistant/internal/core"
	"github.com/4lin107/xiaozhi-assistant/internal/dialogue"
	"github.com/4lin107/xiaozhi-assistant/internal/history"
	"github.com/4lin107/xiaozhi-assistant/internal/nlu"
	"github.com/4lin107/xiaozhi-assistant/internal/security"
	"github.com/4lin107/xiaozhi-assistant/internal/session"
	logx "github.com/4lin107/xiaozhi-assistant/pkg/logger"
	pkgredis "github.com/4lin107/xiaozhi-assistant/pkg/redis"
)

// AppConfig defines all configurable parameters for the assistant, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Assistant configs
	NLU      nlu.ClassifierConfig
	Dialogue dialogue.Config
	History  history.Config
	Security security.Config
	Session  session.Config
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load .env file: %v\n", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to process environment config: %v\n", err)
		os.Exit(1)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	guard := security.NewManager(envCfg.Security)

	var histCipher history.Cipher
	if envCfg.Security.EncryptUserData {
		histCipher = guard
	}
	store, err := history.NewStore(envCfg.History, histCipher, envCfg.Security.EncryptUserData)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to open dialogue history store")
	}
	defer store.Close()

	// A Redis client is only dialled when the snapshot driver asks for it.
	var snapshots session.Store
	if envCfg.Session.Driver == "redis" {
		client, err := envCfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise Redis client")
		}
		defer client.Close()
		snapshots, err = session.NewStore(envCfg.Session, client)
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise session store")
		}
	} else {
		snapshots, err = session.NewStore(envCfg.Session, nil)
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise session store")
		}
	}
	defer snapshots.Close()

	manager := dialogue.NewManager(
		envCfg.Dialogue,
		nlu.NewProcessor(envCfg.NLU),
		actions.NewLocal(),
		guard,
		store,
		snapshots,
	)
	if err := manager.Restore(ctx); err != nil {
		logx.Warn().Err(err).Msg("could not restore previous session, starting fresh")
	}

	fmt.Println("小智助手已启动，输入\"再见\"退出。")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("你: ")
		if !scanner.Scan() {
			break
		}

		response, err := manager.Process(ctx, scanner.Text())
		if err != nil {
			logx.Error().Err(err).Msg("turn processing failed")
			continue
		}
		fmt.Printf("小智: %s\n", response)

		if manager.LastIntent() == nlu.IntentExit {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		logx.Error().Err(err).Msg("stdin read failed")
	}
}
