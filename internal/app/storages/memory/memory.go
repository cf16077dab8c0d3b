package memory

import (
	"context"
	"sync"

	"github.com/UndeadDemidov/shortlink/internal/app/handlers"
)

// Storage реализует хранение ссылок в памяти.
// Является потоко безопасной реализацией Repository, наружу отдает только копии.
type Storage struct {
	storage map[string]string
	mx      sync.Mutex
}

var _ handlers.Repository = (*Storage)(nil)

// NewStorage cоздает и возвращает экземпляр Storage
func NewStorage() *Storage {
	s := Storage{}
	s.storage = make(map[string]string)
	return &s
}

// Load возвращает копию всех сохраненных ссылок
func (s *Storage) Load(_ context.Context) (links map[string]string, err error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	return clone(s.storage), nil
}

// Save заменяет все содержимое хранилища переданными ссылками
func (s *Storage) Save(_ context.Context, links map[string]string) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.storage = clone(links)
	return nil
}

func clone(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
