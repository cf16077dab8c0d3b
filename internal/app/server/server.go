package server

import (
	"io/fs"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/UndeadDemidov/shortlink/internal/app/handlers"
	"github.com/UndeadDemidov/shortlink/internal/app/metrics"
	midware "github.com/UndeadDemidov/shortlink/internal/app/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const readHeaderTimeout = 5 * time.Second

// Options - то, что нужно серверу помимо хранилища и статики
type Options struct {
	Addr         string
	BaseURL      string
	MaxBodyBytes int64
}

// NewServer создает и возвращает новый сервер с указанным репозиторием коротких ссылок
func NewServer(opts Options, repo handlers.Repository, assets fs.FS) *http.Server {
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           NewRouter(opts, repo, assets),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// NewRouter собирает цепочку middleware и таблицу маршрутов
func NewRouter(opts Options, repo handlers.Repository, assets fs.FS) http.Handler {
	handler := handlers.NewURLShortener(opts.BaseURL, repo, assets, opts.MaxBodyBytes)

	r := chi.NewRouter()
	r.Use(middleware.Heartbeat("/health"))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(midware.Logger)
	r.Use(midware.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(midware.Decompress)
	// HEAD уходит в GET-ручки, чтобы чекеры ссылок видели тот же 302
	r.Use(middleware.GetHead)

	r.Get("/", handler.HandleIndex)
	r.Get("/"+handlers.StyleAsset, handler.HandleStyle)
	r.Post("/shorten", handler.HandleShorten)
	r.Get("/{code}", handler.HandleRedirect)
	// Ничего не должно зависать без ответа: любой неизвестный маршрут или метод - 404
	r.NotFound(handler.HandleNotFound)
	r.MethodNotAllowed(handler.HandleNotFound)

	return r
}

// NewMetricsServer поднимает отдельный listener для /metrics и pprof,
// чтобы служебные пути не перекрывали короткие коды
func NewMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
