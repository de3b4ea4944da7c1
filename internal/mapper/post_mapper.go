package mapper

import (
	"smart-blog-be/internal/entity"
	"smart-blog-be/internal/model"

	"gorm.io/datatypes"
)

type PostMapper struct{}

func NewPostMapper() *PostMapper {
	return &PostMapper{}
}

func (m *PostMapper) ToEntity(p *model.Post) *entity.Post {
	if p == nil {
		return nil
	}

	var content []byte
	if len(p.ContentJSON) > 0 && string(p.ContentJSON) != "null" {
		content = append([]byte(nil), p.ContentJSON...)
	}

	return &entity.Post{
		Id:          p.Id,
		Title:       p.Title,
		ContentJSON: content,
		ContentHTML: p.ContentHTML,
		ContentText: p.ContentText,
		Status:      entity.PostStatus(p.Status),
		AuthorId:    p.AuthorId,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *PostMapper) ToModel(p *entity.Post) *model.Post {
	if p == nil {
		return nil
	}

	var content datatypes.JSON
	if len(p.ContentJSON) > 0 {
		content = datatypes.JSON(p.ContentJSON)
	}

	return &model.Post{
		Id:          p.Id,
		Title:       p.Title,
		ContentJSON: content,
		ContentHTML: p.ContentHTML,
		ContentText: p.ContentText,
		Status:      string(p.Status),
		AuthorId:    p.AuthorId,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *PostMapper) ToEntities(posts []*model.Post) []*entity.Post {
	entities := make([]*entity.Post, len(posts))
	for i, p := range posts {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
