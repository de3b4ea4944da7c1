package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByAuthorID struct {
	AuthorID uuid.UUID
}

func (s ByAuthorID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("author_id = ?", s.AuthorID)
}

// RecentlyUpdated orders newest edits first, with the id as a stable tiebreak.
type RecentlyUpdated struct{}

func (s RecentlyUpdated) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC").Order("id ASC")
}
