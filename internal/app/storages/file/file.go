package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/UndeadDemidov/shortlink/internal/app/handlers"
	"github.com/UndeadDemidov/shortlink/internal/app/storages"
	"github.com/UndeadDemidov/shortlink/internal/app/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	emptyDocument = "{}"
	filePerm      = 0o644
)

// Storage реализует хранение ссылок в одном JSON файле вида {"<code>": "<url>"}.
// Файл читается заново на каждый Load и целиком перезаписывается на каждый Save.
// Блокировок нет: одновременные Save из разных процессов могут потерять изменения друг друга.
type Storage struct {
	filename string
}

var _ handlers.Repository = (*Storage)(nil)

// NewStorage cоздаёт и возвращает экземпляр Storage
func NewStorage(filename string) (st *Storage, err error) {
	if err = utils.CheckFilename(filename); err != nil {
		return nil, storageError("check", filename, err)
	}
	return &Storage{filename: filename}, nil
}

// Load читает файл и возвращает map[code]url.
// Если файла нет, создает его с пустым объектом.
func (s *Storage) Load(_ context.Context) (links map[string]string, err error) {
	data, err := os.ReadFile(s.filename)
	if errors.Is(err, fs.ErrNotExist) {
		var created bool
		created, err = s.create()
		if err != nil {
			return nil, err
		}
		if created {
			log.Info().Msgf("link storage %s created", s.filename)
			return map[string]string{}, nil
		}
		// кто-то успел создать файл раньше нас
		data, err = os.ReadFile(s.filename)
	}
	if err != nil {
		return nil, storageError("read", s.filename, err)
	}

	if err = json.Unmarshal(data, &links); err != nil {
		return nil, storageError("parse", s.filename, err)
	}
	if links == nil {
		links = map[string]string{}
	}
	return links, nil
}

// Save перезаписывает файл целиком, JSON с отступом в 2 пробела.
// Пишем во временный файл рядом и переименовываем, чтобы читатели не увидели файл наполовину.
func (s *Storage) Save(_ context.Context, links map[string]string) error {
	if links == nil {
		links = map[string]string{}
	}

	buf := bytes.NewBuffer([]byte{})
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(links); err != nil {
		return storageError("encode", s.filename, err)
	}

	tmp, err := s.writeTemp(buf.Bytes())
	if err != nil {
		return err
	}
	if err = os.Rename(tmp, s.filename); err != nil {
		removeTemp(tmp)
		return storageError("replace", s.filename, err)
	}
	return nil
}

// create атомарно создает файл с пустым объектом.
// os.Link не перезаписывает существующий файл, поэтому создаст его ровно один из конкурентов.
func (s *Storage) create() (created bool, err error) {
	if err = os.MkdirAll(filepath.Dir(s.filename), 0o755); err != nil {
		return false, storageError("create", s.filename, err)
	}

	tmp, err := s.writeTemp([]byte(emptyDocument))
	if err != nil {
		return false, err
	}
	defer removeTemp(tmp)

	err = os.Link(tmp, s.filename)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, storageError("create", s.filename, err)
	}
	return true, nil
}

func (s *Storage) writeTemp(data []byte) (name string, err error) {
	dir, base := filepath.Split(s.filename)
	name = filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))

	file, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return "", storageError("write", name, err)
	}
	defer func() {
		if err != nil {
			removeTemp(name)
		}
	}()

	if _, err = file.Write(data); err != nil {
		_ = file.Close()
		return "", storageError("write", name, err)
	}
	if err = file.Sync(); err != nil {
		_ = file.Close()
		return "", storageError("sync", name, err)
	}
	if err = file.Close(); err != nil {
		return "", storageError("close", name, err)
	}
	return name, nil
}

func removeTemp(name string) {
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Err(err).Msgf("can't remove temp file %s", name)
	}
}

func storageError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", storages.ErrStorage, op, path, err)
}
