package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robiulsunnyemon/eron/config"
	"github.com/robiulsunnyemon/eron/internal/queue"
	ledger_repo "github.com/robiulsunnyemon/eron/internal/repo/ledger"
	user_repo "github.com/robiulsunnyemon/eron/internal/repo/user"
	"github.com/robiulsunnyemon/eron/internal/routers"
	"github.com/robiulsunnyemon/eron/internal/rtc"
	chat_service "github.com/robiulsunnyemon/eron/internal/use-case/chat-case"
	live_service "github.com/robiulsunnyemon/eron/internal/use-case/live-case"
	"github.com/robiulsunnyemon/eron/internal/websocket"
	"github.com/robiulsunnyemon/eron/internal/worker"
	"github.com/robiulsunnyemon/eron/state"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// initialize the application
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	hub := websocket.NewHub()
	sessions := websocket.NewSessionRegistry()
	log.Info().Msg("Websocket hub initialized")

	authFunc := websocket.JWTWebSocketAuth(appState.JwtSecret.Public, appState.Redis)

	tokens := rtc.NewZegoIssuer(config.Conf.RTC.AppID, config.Conf.RTC.ServerSecret, config.Conf.RTC.TokenTTL)
	producer := queue.NewProducer(appState.Redis)

	chatService := chat_service.NewChatService(appState)
	liveService := live_service.NewLiveService(appState, tokens, producer)

	chatServer := websocket.NewChatServer(sessions, chatService, user_repo.NewUserRepo(appState), authFunc)
	liveServer := websocket.NewLiveServer(hub, liveService, authFunc)

	r := routers.NewRouter(appState, routers.Deps{
		ChatServer:  chatServer,
		LiveServer:  liveServer,
		Hub:         hub,
		Sessions:    sessions,
		ChatService: chatService,
		LiveService: liveService,
	})

	workerPool := worker.NewWorkerPool(appState.Redis, 5, ledger_repo.NewLedgerRepo(appState))
	go workerPool.Start(ctx)

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// serve the application
	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")
	// gracefully shutdown the application
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Graceful shutdown failed: %v\n", err)
	} else {
		fmt.Println("Server exited gracefully.")
	}
	workerPool.Wait()
}
