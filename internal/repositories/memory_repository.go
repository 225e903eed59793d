package repositories

import (
	"context"
	"sort"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// memoryRepository keeps values, not pointers, so a caller mutating a
// fetched record does not change the stored copy until Update.
type memoryRepository[M any, PM Model[M]] struct {
	items cmap.ConcurrentMap[string, M]
}

func NewMemoryRepository[M any, PM Model[M]]() Repository[M] {
	return &memoryRepository[M, PM]{items: cmap.New[M]()}
}

func (r *memoryRepository[M, PM]) Get(_ context.Context, id string) (*M, error) {
	model, ok := r.items.Get(id)
	if !ok {
		return nil, nil
	}
	return &model, nil
}

func (r *memoryRepository[M, PM]) GetAll(_ context.Context) ([]M, error) {
	models := make([]M, 0, r.items.Count())
	for item := range r.items.IterBuffered() {
		models = append(models, item.Val)
	}
	sortByCreation[M, PM](models)
	return models, nil
}

func (r *memoryRepository[M, PM]) FindBy(ctx context.Context, field string, value string) ([]M, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterBy(all, field, value)
}

func (r *memoryRepository[M, PM]) Save(_ context.Context, model *M) error {
	PM(model).Stamp()
	r.items.Set(PM(model).GetID().String(), *model)
	return nil
}

func (r *memoryRepository[M, PM]) Update(_ context.Context, model *M) error {
	id := PM(model).GetID().String()
	if !r.items.Has(id) {
		return ErrNotFound
	}
	PM(model).Stamp()
	r.items.Set(id, *model)
	return nil
}

func (r *memoryRepository[M, PM]) Delete(_ context.Context, model *M) error {
	r.items.Remove(PM(model).GetID().String())
	return nil
}

func (r *memoryRepository[M, PM]) Count(_ context.Context) (int64, error) {
	return int64(r.items.Count()), nil
}

// creation time has second resolution, so ties fall back to the id
func sortByCreation[M any, PM Model[M]](models []M) {
	sort.SliceStable(models, func(i, j int) bool {
		a, b := PM(&models[i]), PM(&models[j])
		if ca, cb := a.GetCreatedAt(), b.GetCreatedAt(); ca != cb {
			return ca < cb
		}
		return a.GetID().String() < b.GetID().String()
	})
}
