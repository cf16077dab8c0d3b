package utils

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5/middleware"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
)

const (
	shortIDAlphabet = "0123456789abcdef"
	// ShortIDLength - 4 случайных байта в hex
	ShortIDLength = 8
	shortIDTries  = 10
)

var ErrUnableCreateShortID = errors.New("couldn't create unique ID in 10 tries")

// IsURL проверяет ссылку на валидность.
// Хотел сначала на регулярках сделать, потом со стековерфлоу согрешил
func IsURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// CheckFilename проверяет, что по указанному пути можно создать файл.
// Недостающие каталоги создаются.
func CheckFilename(filename string) (err error) {
	if err = os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	// Check if file already exists
	if _, err = os.Stat(filename); err == nil {
		return nil
	}

	// Attempt to create it
	var d []byte
	if err = os.WriteFile(filename, d, 0o644); err == nil {
		return os.Remove(filename) // And delete it
	}

	return err
}

// NewUniqueID возвращает криптостойкий случайный ID из 8 hex символов
func NewUniqueID() (id string, err error) {
	return gonanoid.Generate(shortIDAlphabet, ShortIDLength)
}

// CreateShortID создает короткий ID с проверкой на уникальность
func CreateShortID(ctx context.Context, isExist func(context.Context, string) bool) (id string, err error) {
	for i := 0; i < shortIDTries; i++ {
		id, err = NewUniqueID()
		if err != nil {
			return "", err
		}
		if !isExist(ctx, id) {
			return id, nil
		}
	}
	return "", ErrUnableCreateShortID
}

// InternalServerError отвечает клиенту 500 без подробностей, а саму ошибку пишет в лог
func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().
		Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
