package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hbnb/internal/config"
	"hbnb/internal/models/db_models"
)

// ErrNotFound is returned by Update when the record no longer exists.
var ErrNotFound = errors.New("record not found")

// Repository is the storage contract shared by every backend. Get returns
// nil, nil when the record does not exist, following the same convention as
// the gorm lookups below.
type Repository[M any] interface {
	Get(ctx context.Context, id string) (*M, error)
	GetAll(ctx context.Context) ([]M, error)
	FindBy(ctx context.Context, field string, value string) ([]M, error)
	Save(ctx context.Context, model *M) error
	Update(ctx context.Context, model *M) error
	Delete(ctx context.Context, model *M) error
	Count(ctx context.Context) (int64, error)
}

// Model ties a model struct to its pointer, which carries the Entity methods.
type Model[M any] interface {
	*M
	db_models.Entity
}

// Backend holds whichever storage the configured repository kind needs.
// Exactly one of DB and Store is set unless Kind is memory.
type Backend struct {
	Kind  string
	DB    *gorm.DB
	Store *Store
}

func NewRepository[M any, PM Model[M]](backend *Backend) (Repository[M], error) {
	switch backend.Kind {
	case config.RepositoryDB:
		if backend.DB == nil {
			return nil, fmt.Errorf("db repository requires a database connection")
		}
		return NewDBRepository[M, PM](backend.DB), nil
	case config.RepositoryFile, config.RepositoryPickle:
		if backend.Store == nil {
			return nil, fmt.Errorf("%s repository requires a store", backend.Kind)
		}
		return NewStoreRepository[M, PM](backend.Store), nil
	case config.RepositoryMemory, "":
		return NewMemoryRepository[M, PM](), nil
	default:
		return nil, fmt.Errorf("unknown repository kind %q", backend.Kind)
	}
}

func tableOf[M any, PM Model[M]]() string {
	var m M
	return PM(&m).TableName()
}
