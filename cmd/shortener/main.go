package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UndeadDemidov/shortlink/cfg"
	"github.com/UndeadDemidov/shortlink/internal/app/handlers"
	"github.com/UndeadDemidov/shortlink/internal/app/server"
	"github.com/UndeadDemidov/shortlink/internal/app/storages/file"
	"github.com/UndeadDemidov/shortlink/internal/app/storages/memory"
	"github.com/UndeadDemidov/shortlink/web"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.With().Caller().Logger()
}

func main() {
	config := cfg.GetConfig()
	setupLogger(config)

	servers, err := CreateServers(config)
	if err != nil {
		log.Fatal().Err(err).Msg("can't create server")
	}
	if err = Run(servers...); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("Server exited properly")
}

func setupLogger(config *cfg.Config) {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		log.Warn().Err(err).Msgf("unknown log level %q, info is used", config.LogLevel)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if config.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// CreateServers собирает основной сервер и, если задан адрес, сервер метрик
func CreateServers(config *cfg.Config) ([]*http.Server, error) {
	repo, err := newRepository(config.FileStoragePath)
	if err != nil {
		return nil, err
	}

	if len(config.StaticDir) != 0 {
		log.Info().Msgf("static assets are served from %s", config.StaticDir)
	}
	srv := server.NewServer(server.Options{
		Addr:         config.ServerAddress,
		BaseURL:      config.BaseURL,
		MaxBodyBytes: config.MaxBodyBytes,
	}, repo, web.Assets(config.StaticDir))

	servers := []*http.Server{srv}
	if len(config.MetricsAddress) != 0 {
		servers = append(servers, server.NewMetricsServer(config.MetricsAddress))
	}
	return servers, nil
}

// newRepository выбирает хранилище: файл, если путь задан, иначе память.
// Недоступный путь - ошибка, молча в память не переключаемся, иначе ссылки пропадут после рестарта.
func newRepository(filename string) (handlers.Repository, error) {
	if len(filename) == 0 {
		log.Warn().Msg("In memory storage will be used, links are lost on restart")
		return memory.NewStorage(), nil
	}
	repo, err := file.NewStorage(filename)
	if err != nil {
		return nil, err
	}
	log.Info().Msgf("In file storage will be used: %s", filename)
	return repo, nil
}

// Run запускает серверы и ждет SIGINT/SIGTERM либо падения любого из них,
// после чего гасит все с таймаутом
func Run(servers ...*http.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			log.Info().Msgf("Server started on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("Server stopped")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
