package services

import (
	"conduit-api/models"
	"conduit-api/repositories"
)

type TagService interface {
	ListTags() (*models.TagsResponse, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ListTags() (*models.TagsResponse, error) {
	names, err := s.tagRepo.ListUsedNames()
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return &models.TagsResponse{Tags: names}, nil
}
