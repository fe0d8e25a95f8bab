package services

import (
	"errors"
	"strconv"

	"conduit-api/models"
	"conduit-api/repositories"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CommentService interface {
	AddComment(slug string, req models.AddCommentRequest, userID uint) (*models.CommentDto, error)
	ListComments(slug string, viewerID uint) ([]models.CommentDto, error)
	DeleteComment(slug string, commentID uint, userID uint) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	articleRepo repositories.ArticleRepository
	userRepo    repositories.UserRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, articleRepo repositories.ArticleRepository, userRepo repositories.UserRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
	}
}

func (s *commentService) AddComment(slug string, req models.AddCommentRequest, userID uint) (*models.CommentDto, error) {
	if err := s.assertArticleExists(slug); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("user", strconv.FormatUint(uint64(userID), 10))
		}
		return nil, err
	}

	comment := &models.Comment{
		Body:        req.Body,
		ArticleSlug: slug,
		Author:      user.Username,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	log.Info().Uint("comment_id", comment.ID).Str("slug", slug).Msg("comment added")

	dto := s.commentToDto(comment)
	dto.Author = models.AuthorDto{
		Username: user.Username,
		Bio:      user.Bio,
		Image:    user.Image,
	}
	return dto, nil
}

func (s *commentService) ListComments(slug string, viewerID uint) ([]models.CommentDto, error) {
	if err := s.assertArticleExists(slug); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByArticle(slug)
	if err != nil {
		return nil, err
	}

	var viewer *models.User
	if viewerID != 0 {
		viewer, err = s.userRepo.GetByID(viewerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewErrorNotFound("user", strconv.FormatUint(uint64(viewerID), 10))
			}
			return nil, err
		}
	}

	dtos := make([]models.CommentDto, 0, len(comments))
	for i := range comments {
		author, err := s.userRepo.GetByUsername(comments[i].Author)
		if err != nil {
			return nil, err
		}
		dto := s.commentToDto(&comments[i])
		dto.Author = models.AuthorDto{
			Username:  author.Username,
			Bio:       author.Bio,
			Image:     author.Image,
			Following: viewer != nil && viewer.IsFollowing(author.ID),
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

// DeleteComment binds the comment to its article and requires the caller to
// be the comment's author.
func (s *commentService) DeleteComment(slug string, commentID uint, userID uint) error {
	comment, err := s.commentRepo.GetByIDAndArticle(commentID, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewErrorNotFound("comment", strconv.FormatUint(uint64(commentID), 10))
		}
		return err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if comment.Author != user.Username {
		return models.ErrorPermissionDenied{Message: "you are not allowed to delete this comment"}
	}

	log.Info().Uint("comment_id", commentID).Str("slug", slug).Msg("deleting comment")

	return s.commentRepo.Delete(comment)
}

func (s *commentService) assertArticleExists(slug string) error {
	exists, err := s.articleRepo.ExistsBySlug(slug)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewErrorNotFound("article", slug)
	}
	return nil
}

func (s *commentService) commentToDto(comment *models.Comment) *models.CommentDto {
	return &models.CommentDto{
		ID:        comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Author: models.AuthorDto{
			Username: comment.Author,
		},
	}
}
