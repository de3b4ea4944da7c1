package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Post struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title       string         `gorm:"type:varchar(500);not null;default:'Untitled'"`
	ContentJSON datatypes.JSON `gorm:"column:content_json"`
	ContentHTML string         `gorm:"column:content_html;type:text"`
	ContentText string         `gorm:"column:content_text;type:text"`
	Status      string         `gorm:"type:varchar(20);not null;default:'draft';index"`
	AuthorId    *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime;index"`
}

func (Post) TableName() string {
	return "posts"
}
