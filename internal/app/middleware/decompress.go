package middleware

import (
	"compress/gzip"
	"net/http"
)

// Decompress реализует распаковку запроса переданного в сжатом gzip.
// Лимит на размер тела ставит уже ручка, то есть он считается по распакованным данным.
func Decompress(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") == "gzip" {
			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "Request body is not valid gzip", http.StatusBadRequest)
				return
			}
			defer gz.Close()
			r.Body = gz
			r.Header.Del("Content-Encoding")
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
