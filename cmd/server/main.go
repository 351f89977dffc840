package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hexfieldgame/hexfield/pkg/api"
	"github.com/hexfieldgame/hexfield/pkg/events"
	"github.com/hexfieldgame/hexfield/pkg/gamelist"
	"github.com/hexfieldgame/hexfield/pkg/log"
	"github.com/hexfieldgame/hexfield/pkg/repositories"
	"github.com/hexfieldgame/hexfield/pkg/version"
	"github.com/hexfieldgame/hexfield/pkg/workers"
)

func main() {
	apiPort := flag.Int("api-port", 8880, "API port to listen on")
	saveDir := flag.String("save-dir", "./savegames", "Directory savegame files are written to (must exist)")
	sqlitePath := flag.String("sqlite-path", "./hexfield.db", "SQLite database path, used when DATABASE_URL is not set")
	certFile := flag.String("cert-file", "", "TLS certificate file")
	keyFile := flag.String("key-file", "", "TLS key file")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting server version %s", version.String())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if info, err := os.Stat(*saveDir); err != nil || !info.IsDir() {
		panic(fmt.Sprintf("Save directory %s does not exist", *saveDir))
	}

	var repository repositories.Repository
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		repository, err = repositories.NewPostgresRepository(ctx, connStr)
	} else {
		repository, err = repositories.NewSQLiteRepository(ctx, *sqlitePath)
	}
	if err != nil {
		panic(fmt.Sprintf("Failed to open savegame index: %v", err))
	}
	defer repository.Close(ctx)

	gameList := gamelist.NewGameList()
	eventBus := events.NewBus()

	saveRequestChan := make(chan workers.SaveGameRequest, 100)
	saveGameWorker := workers.NewSaveGameWorker(workers.NewSaveGameWorkerOptions{
		GameList:        gameList,
		Repository:      repository,
		EventBus:        eventBus,
		SaveRequestChan: saveRequestChan,
		SaveDir:         *saveDir,
	})
	go saveGameWorker.Start(ctx)

	var tlsConfig *api.TLSConfig
	if *certFile != "" && *keyFile != "" {
		tlsConfig = &api.TLSConfig{
			CertFile: *certFile,
			KeyFile:  *keyFile,
		}
	}

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:            *apiPort,
		TLS:             tlsConfig,
		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		GameList:        gameList,
		Repository:      repository,
		EventBus:        eventBus,
		SaveRequestChan: saveRequestChan,
		SaveDir:         *saveDir,
	})
	go apiServer.Start()

	<-ctx.Done()
	log.Info("Shutting down")
	if err := apiServer.Stop(context.Background()); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}
}
