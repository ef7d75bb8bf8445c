package mapper

import (
	"gorm.io/datatypes"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/model"
)

type ArticleMapper struct{}

func NewArticleMapper() *ArticleMapper {
	return &ArticleMapper{}
}

func (m *ArticleMapper) ToEntity(a *model.Article) *entity.Article {
	if a == nil {
		return nil
	}
	return &entity.Article{
		Id:               a.Id,
		UserId:           a.UserId,
		Title:            a.Title,
		Status:           a.Status,
		Settings:         a.Settings.Data(),
		GeneratedContent: a.GeneratedContent,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (m *ArticleMapper) ToModel(a *entity.Article) *model.Article {
	if a == nil {
		return nil
	}
	return &model.Article{
		Id:               a.Id,
		UserId:           a.UserId,
		Title:            a.Title,
		Status:           a.Status,
		Settings:         datatypes.NewJSONType(a.Settings),
		GeneratedContent: a.GeneratedContent,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (m *ArticleMapper) ToEntities(models []*model.Article) []*entity.Article {
	entities := make([]*entity.Article, len(models))
	for i, a := range models {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
