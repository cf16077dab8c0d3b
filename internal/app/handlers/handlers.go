package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/UndeadDemidov/shortlink/internal/app/metrics"
	"github.com/UndeadDemidov/shortlink/internal/app/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	IndexAsset = "index.html"
	StyleAsset = "style.css"

	contentTypeHTML = "text/html"
	contentTypeCSS  = "text/css"
	contentTypeJSON = "application/json"

	notFoundBody = "404 Page Not Found"
	conflictBody = "Shortcode already exists. Please choose another."
)

var shortcodeRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Пути, которые перехватываются роутером раньше, чем GET /{code}.
// Heartbeat сравнивает путь без учета регистра, поэтому и здесь сравниваем в нижнем регистре.
var reservedShortcodes = map[string]struct{}{
	"shorten": {},
	"health":  {},
}

// Repository описывает контракт работы с хранилищем.
// Хранилище не кеширует ссылки: Load каждый раз читает актуальное состояние, Save перезаписывает его целиком.
type Repository interface {
	Load(ctx context.Context) (links map[string]string, err error)
	Save(ctx context.Context, links map[string]string) error
}

// URLShortener - набор ручек сервиса
type URLShortener struct {
	linkRepo     Repository
	baseURL      string
	assets       fs.FS
	maxBodyBytes int64
	// Сериализует цикл Load-проверка-Save внутри процесса.
	// Несколько процессов на одном файле по-прежнему могут потерять записи друг друга.
	mx sync.Mutex
}

// NewURLShortener создает URLShortener и инициализирует его.
// base должен заканчиваться на "/", код просто дописывается в конец.
func NewURLShortener(base string, repo Repository, assets fs.FS, maxBodyBytes int64) *URLShortener {
	return &URLShortener{
		linkRepo:     repo,
		baseURL:      base,
		assets:       assets,
		maxBodyBytes: maxBodyBytes,
	}
}

// HandleIndex отдает главную страницу
func (s *URLShortener) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s.serveAsset(w, r, IndexAsset, contentTypeHTML)
}

// HandleStyle отдает стили главной страницы
func (s *URLShortener) HandleStyle(w http.ResponseWriter, r *http.Request) {
	s.serveAsset(w, r, StyleAsset, contentTypeCSS)
}

func (s *URLShortener) serveAsset(w http.ResponseWriter, r *http.Request, name, contentType string) {
	data, err := fs.ReadFile(s.assets, name)
	if err != nil {
		utils.InternalServerError(w, r, fmt.Errorf("can't read asset %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(data); err != nil {
		log.Err(err).Msgf("can't write asset %s", name)
	}
}

// HandleRedirect - ручка для открытия по короткой ссылке
func (s *URLShortener) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	links, err := s.linkRepo.Load(r.Context())
	if err != nil {
		utils.InternalServerError(w, r, err)
		return
	}

	u, ok := links[code]
	if !ok {
		metrics.LookupMisses.Inc()
		s.HandleNotFound(w, r)
		return
	}

	metrics.Redirects.Inc()
	// http.Redirect не годится: он переписывает относительные ссылки, а отдать надо ровно то, что сохранили
	w.Header().Set("Location", u)
	w.WriteHeader(http.StatusFound)
}

// HandleShorten - ручка для создания короткой ссылки.
// Принимает JSON {"url":"...","shortcode":"..."}, shortcode необязателен.
func (s *URLShortener) HandleShorten(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		http.Error(w, fmt.Sprintf("Request body must not exceed %d bytes", s.maxBodyBytes), http.StatusRequestEntityTooLarge)
		return
	case errors.Is(err, ErrInvalidRequestJSON):
		http.Error(w, "Invalid JSON data", http.StatusBadRequest)
		return
	case err != nil:
		log.Warn().Err(err).Msg("can't read shorten request")
		http.Error(w, "Couldn't read request body", http.StatusBadRequest)
		return
	}

	if err = validate(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	code, err := s.shorten(r.Context(), req)
	var conflict *ShortcodeConflictError
	switch {
	case errors.As(err, &conflict):
		metrics.Conflicts.Inc()
		log.Info().Str("shortcode", conflict.Shortcode).Msg("shortcode rejected, already in use")
		http.Error(w, conflictBody, http.StatusConflict)
		return
	case err != nil:
		utils.InternalServerError(w, r, err)
		return
	}
	metrics.LinksCreated.Inc()

	resp := ShortenResponse{
		Success:   true,
		Shortcode: code,
		ShortURL:  s.baseURL + code,
	}
	buf := bytes.NewBuffer([]byte{})
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err = encoder.Encode(&resp); err != nil {
		utils.InternalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(buf.Bytes()); err != nil {
		log.Err(err).Msg("can't write shorten response")
	}
}

// decodeRequest вычитывает тело целиком, но не больше maxBodyBytes, и только потом разбирает JSON
func (s *URLShortener) decodeRequest(w http.ResponseWriter, r *http.Request) (req ShortenRequest, err error) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, ErrBodyTooLarge
		}
		return req, fmt.Errorf("%w: %v", ErrUnreadableBody, err)
	}

	if err = json.Unmarshal(b, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalidRequestJSON, err)
	}
	return req, nil
}

func validate(req ShortenRequest) error {
	if len(req.URL) == 0 {
		return ErrURLRequired
	}
	if len(req.Shortcode) == 0 {
		return nil
	}
	if !shortcodeRe.MatchString(req.Shortcode) {
		return ErrInvalidShortcode
	}
	if _, ok := reservedShortcodes[strings.ToLower(req.Shortcode)]; ok {
		return fmt.Errorf("%w: %s", ErrReservedShortcode, req.Shortcode)
	}
	return nil
}

// shorten сохраняет ссылку и возвращает итоговый код.
// Переданный клиентом код никогда не перезаписывает существующий.
func (s *URLShortener) shorten(ctx context.Context, req ShortenRequest) (code string, err error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	links, err := s.linkRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	if links == nil {
		links = make(map[string]string)
	}

	code = req.Shortcode
	if len(code) == 0 {
		code, err = utils.CreateShortID(ctx, func(_ context.Context, id string) bool {
			_, ok := links[id]
			return ok
		})
		if errors.Is(err, utils.ErrUnableCreateShortID) {
			return "", NewShortcodeConflictError(err, "<generated>")
		}
		if err != nil {
			return "", err
		}
	} else if _, ok := links[code]; ok {
		return "", NewShortcodeConflictError(ErrShortcodeExists, code)
	}

	links[code] = req.URL
	if err = s.linkRepo.Save(ctx, links); err != nil {
		return "", err
	}
	log.Debug().Str("shortcode", code).Str("url", req.URL).Msg("link stored")
	return code, nil
}

// HandleNotFound обрабатывает не найденный путь и неподдерживаемый метод
func (s *URLShortener) HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusNotFound)
	if _, err := w.Write([]byte(notFoundBody)); err != nil {
		log.Err(err).Msg("can't write not found response")
	}
}
