package repositories

import (
	"encoding/json"
	"fmt"
)

// fieldEquals compares a column of a stored record by its JSON name, which
// the models keep identical to the gorm column name.
func fieldEquals(model any, field string, value string) (bool, error) {
	raw, err := json.Marshal(model)
	if err != nil {
		return false, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false, err
	}
	v, ok := fields[field]
	if !ok {
		return false, fmt.Errorf("unknown field %q", field)
	}
	if v == nil {
		return value == "", nil
	}
	return fmt.Sprint(v) == value, nil
}

func filterBy[M any](all []M, field string, value string) ([]M, error) {
	models := make([]M, 0)
	for i := range all {
		ok, err := fieldEquals(&all[i], field, value)
		if err != nil {
			return nil, err
		}
		if ok {
			models = append(models, all[i])
		}
	}
	return models, nil
}
