package repositories

import (
	"context"
)

type storeRepository[M any, PM Model[M]] struct {
	store *Store
	table string
}

func NewStoreRepository[M any, PM Model[M]](store *Store) Repository[M] {
	return &storeRepository[M, PM]{
		store: store,
		table: tableOf[M, PM](),
	}
}

func (r *storeRepository[M, PM]) Get(_ context.Context, id string) (*M, error) {
	raw, ok := r.store.get(r.table, id)
	if !ok {
		return nil, nil
	}
	var model M
	if err := r.store.codec.decodeRecord(raw, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

func (r *storeRepository[M, PM]) GetAll(_ context.Context) ([]M, error) {
	rows := r.store.all(r.table)
	models := make([]M, 0, len(rows))
	for _, raw := range rows {
		var model M
		if err := r.store.codec.decodeRecord(raw, &model); err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	sortByCreation[M, PM](models)
	return models, nil
}

func (r *storeRepository[M, PM]) FindBy(ctx context.Context, field string, value string) ([]M, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterBy(all, field, value)
}

func (r *storeRepository[M, PM]) Save(_ context.Context, model *M) error {
	PM(model).Stamp()
	return r.store.put(r.table, PM(model).GetID().String(), model, false)
}

func (r *storeRepository[M, PM]) Update(_ context.Context, model *M) error {
	PM(model).Stamp()
	return r.store.put(r.table, PM(model).GetID().String(), model, true)
}

func (r *storeRepository[M, PM]) Delete(_ context.Context, model *M) error {
	return r.store.remove(r.table, PM(model).GetID().String())
}

func (r *storeRepository[M, PM]) Count(_ context.Context) (int64, error) {
	return int64(r.store.count(r.table)), nil
}
