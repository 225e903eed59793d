package repositories

import (
	"path/filepath"

	"github.com/rs/zerolog/log"

	"hbnb/internal/config"
	"hbnb/internal/infra"
)

const (
	fileStoreName   = "hbnb.json"
	pickleStoreName = "hbnb.pkl"
)

// NewBackend opens only the storage the configured repository kind uses.
func NewBackend(cfg *config.Config) (*Backend, error) {
	backend := &Backend{Kind: cfg.Repository}

	switch cfg.Repository {
	case config.RepositoryDB:
		db, err := infra.OpenDatabase(cfg)
		if err != nil {
			return nil, err
		}
		backend.DB = db
	case config.RepositoryFile:
		store, err := NewFileStore(filepath.Join(cfg.DataDir, fileStoreName))
		if err != nil {
			return nil, err
		}
		backend.Store = store
	case config.RepositoryPickle:
		store, err := NewPickleStore(filepath.Join(cfg.DataDir, pickleStoreName))
		if err != nil {
			return nil, err
		}
		backend.Store = store
	}

	log.Info().Str("repository", backend.Kind).Msg("using repository")
	return backend, nil
}

func (b *Backend) Close() {
	if b.DB != nil {
		infra.CloseDatabase(b.DB)
	}
}
