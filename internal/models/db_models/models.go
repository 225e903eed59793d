package db_models

// All lists every model for schema migration.
func All() []any {
	return []any{
		&User{},
		&Country{},
		&City{},
		&Place{},
		&Amenity{},
		&PlaceAmenity{},
		&Review{},
	}
}
