package handlers

import (
	"context"
	"errors"
	"sync"
)

var ErrMockedStorage = errors.New("mocked storage failure")

// RepoMock - простейший мок для Repository интерфейса.
// Отдает копию, как и настоящее хранилище, чтобы незаписанные изменения не утекали.
type RepoMock struct {
	mx       sync.Mutex
	links    map[string]string
	loadErr  error
	saveErr  error
	saves    int
	nilLoads bool
}

func NewRepoMock(links map[string]string) *RepoMock {
	return &RepoMock{links: copyLinks(links)}
}

func (rm *RepoMock) Load(_ context.Context) (map[string]string, error) {
	rm.mx.Lock()
	defer rm.mx.Unlock()

	if rm.loadErr != nil {
		return nil, rm.loadErr
	}
	if rm.nilLoads {
		return nil, nil
	}
	return copyLinks(rm.links), nil
}

func (rm *RepoMock) Save(_ context.Context, links map[string]string) error {
	rm.mx.Lock()
	defer rm.mx.Unlock()

	if rm.saveErr != nil {
		return rm.saveErr
	}
	rm.saves++
	rm.links = copyLinks(links)
	return nil
}

func (rm *RepoMock) snapshot() map[string]string {
	rm.mx.Lock()
	defer rm.mx.Unlock()
	return copyLinks(rm.links)
}

func copyLinks(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
