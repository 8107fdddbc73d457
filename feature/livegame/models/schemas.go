package models

// Schemas lists every entity type the local store manages.
func Schemas() []any {
	return []any{
		&Game{},
		&Point{},
		&Action{},
		&Team{},
		&Player{},
		&Tournament{},
	}
}
