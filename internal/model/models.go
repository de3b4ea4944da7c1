package model

// All lists every table managed by the migrator.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Post{},
	}
}
