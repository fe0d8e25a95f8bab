package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"conduit-api/models"
	"conduit-api/repositories"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ArticleService interface {
	CreateArticle(req models.CreateArticleRequest, authorID uint) (*models.ArticleDto, error)
	GetArticle(slug string, viewerID uint) (*models.ArticleDto, error)
	ListArticles(params models.ArticleListParams, viewerID uint) (*models.ArticleListResponse, error)
	GetFeed(viewerID uint, limit, offset int) (*models.ArticleListResponse, error)
	UpdateArticle(slug string, req models.UpdateArticleRequest, viewerID uint) (*models.ArticleDto, error)
	DeleteArticle(slug string, viewerID uint) error
	FavoriteArticle(slug string, viewerID uint) (*models.ArticleDto, error)
	UnfavoriteArticle(slug string, viewerID uint) (*models.ArticleDto, error)
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	userRepo    repositories.UserRepository
	tagRepo     repositories.TagRepository
}

func NewArticleService(articleRepo repositories.ArticleRepository, userRepo repositories.UserRepository, tagRepo repositories.TagRepository) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		tagRepo:     tagRepo,
	}
}

func (s *articleService) CreateArticle(req models.CreateArticleRequest, authorID uint) (*models.ArticleDto, error) {
	log.Info().Str("title", req.Title).Msg("creating article")

	author, err := s.loadViewer(authorID)
	if err != nil {
		return nil, err
	}

	slug, err := GenerateUniqueSlug(req.Title, s.articleRepo.ExistsBySlug)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(req.TagList)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		AuthorID:    authorID,
		Tags:        tags,
	}
	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}

	log.Info().Str("slug", slug).Msg("article created")

	created, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.articleToDto(created, author), nil
}

func (s *articleService) GetArticle(slug string, viewerID uint) (*models.ArticleDto, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("article", slug)
		}
		return nil, err
	}

	viewer, err := s.loadOptionalViewer(viewerID)
	if err != nil {
		return nil, err
	}
	return s.articleToDto(article, viewer), nil
}

// ListArticles composes the optional tag, author and favoriter filters into
// one paginated query, newest first. A favoriter username that resolves to
// no user yields an empty result rather than an error; an authenticated
// viewer that cannot be loaded is an error, since the caller has already
// been authenticated.
func (s *articleService) ListArticles(params models.ArticleListParams, viewerID uint) (*models.ArticleListResponse, error) {
	if err := validatePagination(params.Limit, params.Offset); err != nil {
		return nil, err
	}

	log.Debug().
		Str("tag", params.Tag).
		Str("author", params.Author).
		Str("favorited", params.Favorited).
		Int("limit", params.Limit).
		Int("offset", params.Offset).
		Msg("listing articles")

	var favoritedByID uint
	if params.Favorited != "" {
		favoriter, err := s.userRepo.GetByUsername(params.Favorited)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn().Str("favorited", params.Favorited).Msg("favoriter not found, returning empty result")
				return emptyArticleList(), nil
			}
			return nil, err
		}
		favoritedByID = favoriter.ID
	}

	viewer, err := s.loadOptionalViewer(viewerID)
	if err != nil {
		return nil, err
	}

	articles, total, err := s.articleRepo.GetList(params, favoritedByID)
	if err != nil {
		return nil, err
	}
	return s.articlesToList(articles, total, viewer), nil
}

// GetFeed returns the newest articles authored by users the viewer follows.
// An empty following set is an empty feed, not an error.
func (s *articleService) GetFeed(viewerID uint, limit, offset int) (*models.ArticleListResponse, error) {
	if err := validatePagination(limit, offset); err != nil {
		return nil, err
	}

	viewer, err := s.loadViewer(viewerID)
	if err != nil {
		return nil, err
	}

	if len(viewer.Following) == 0 {
		return emptyArticleList(), nil
	}

	authorIDs := make([]uint, 0, len(viewer.Following))
	for _, followee := range viewer.Following {
		authorIDs = append(authorIDs, followee.ID)
	}

	articles, total, err := s.articleRepo.GetFeed(authorIDs, limit, offset)
	if err != nil {
		return nil, err
	}

	log.Debug().Uint("viewer_id", viewerID).Int64("total", total).Msg("feed generated")

	return s.articlesToList(articles, total, viewer), nil
}

func (s *articleService) UpdateArticle(slug string, req models.UpdateArticleRequest, viewerID uint) (*models.ArticleDto, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("article", slug)
		}
		return nil, err
	}

	if article.AuthorID != viewerID {
		return nil, models.ErrorPermissionDenied{Message: "you are not allowed to update this article"}
	}

	// Blank fields are no-ops; a changed title gets a freshly generated
	// slug.
	if title := strings.TrimSpace(req.Title); title != "" && title != article.Title {
		newSlug, err := GenerateUniqueSlug(title, s.articleRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		article.Title = title
		article.Slug = newSlug
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		article.Description = desc
	}
	if body := strings.TrimSpace(req.Body); body != "" {
		article.Body = body
	}
	article.UpdatedAt = time.Now()

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}

	log.Info().Str("slug", article.Slug).Msg("article updated")

	viewer, err := s.loadViewer(viewerID)
	if err != nil {
		return nil, err
	}
	return s.articleToDto(article, viewer), nil
}

func (s *articleService) DeleteArticle(slug string, viewerID uint) error {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewErrorNotFound("article", slug)
		}
		return err
	}

	if article.AuthorID != viewerID {
		return models.ErrorPermissionDenied{Message: "you are not allowed to delete this article"}
	}

	log.Info().Str("slug", slug).Msg("deleting article")

	return s.articleRepo.Delete(article)
}

func (s *articleService) FavoriteArticle(slug string, viewerID uint) (*models.ArticleDto, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("article", slug)
		}
		return nil, err
	}

	viewer, err := s.loadViewer(viewerID)
	if err != nil {
		return nil, err
	}

	if article.IsFavoritedBy(viewerID) {
		return nil, models.ErrorInvalidOperation{Message: "article already favorited"}
	}

	if err := s.articleRepo.AddFavorite(article, viewer); err != nil {
		return nil, err
	}

	refreshed, err := s.articleRepo.GetBySlug(article.Slug)
	if err != nil {
		return nil, err
	}
	return s.articleToDto(refreshed, viewer), nil
}

func (s *articleService) UnfavoriteArticle(slug string, viewerID uint) (*models.ArticleDto, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("article", slug)
		}
		return nil, err
	}

	viewer, err := s.loadViewer(viewerID)
	if err != nil {
		return nil, err
	}

	if !article.IsFavoritedBy(viewerID) {
		return nil, models.ErrorInvalidOperation{Message: "article not favorited"}
	}

	if err := s.articleRepo.RemoveFavorite(article, viewer); err != nil {
		return nil, err
	}

	refreshed, err := s.articleRepo.GetBySlug(article.Slug)
	if err != nil {
		return nil, err
	}
	return s.articleToDto(refreshed, viewer), nil
}

// resolveTags maps tag names onto Tag rows, creating the ones that do not
// exist yet.
func (s *articleService) resolveTags(names []string) ([]models.Tag, error) {
	var tags []models.Tag
	for _, name := range names {
		tag, err := s.tagRepo.GetByName(name)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			tag = &models.Tag{Name: name}
			if err := s.tagRepo.Create(tag); err != nil {
				return nil, err
			}
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// loadViewer loads an authenticated caller with their following set. The
// caller has a valid token, so a missing user is a genuine error.
func (s *articleService) loadViewer(viewerID uint) (*models.User, error) {
	viewer, err := s.userRepo.GetByID(viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewErrorNotFound("user", strconv.FormatUint(uint64(viewerID), 10))
		}
		return nil, err
	}
	return viewer, nil
}

// loadOptionalViewer returns nil for anonymous callers (viewerID zero).
func (s *articleService) loadOptionalViewer(viewerID uint) (*models.User, error) {
	if viewerID == 0 {
		return nil, nil
	}
	return s.loadViewer(viewerID)
}

// articleToDto annotates the article for the viewer: favorited means the
// viewer is in the article's favoriter set, and the author block's
// following flag means the viewer follows the author.
func (s *articleService) articleToDto(article *models.Article, viewer *models.User) *models.ArticleDto {
	favorited := viewer != nil && article.IsFavoritedBy(viewer.ID)
	following := viewer != nil && viewer.IsFollowing(article.AuthorID)

	return &models.ArticleDto{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        article.TagNames(),
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: len(article.FavoritedBy),
		Author: models.AuthorDto{
			Username:  article.Author.Username,
			Bio:       article.Author.Bio,
			Image:     article.Author.Image,
			Following: following,
		},
	}
}

func (s *articleService) articlesToList(articles []models.Article, total int64, viewer *models.User) *models.ArticleListResponse {
	dtos := make([]models.ArticleDto, 0, len(articles))
	for i := range articles {
		dtos = append(dtos, *s.articleToDto(&articles[i], viewer))
	}
	return &models.ArticleListResponse{Articles: dtos, ArticlesCount: total}
}

func emptyArticleList() *models.ArticleListResponse {
	return &models.ArticleListResponse{Articles: []models.ArticleDto{}, ArticlesCount: 0}
}

// validatePagination rejects limit < 1 up front; the page math divides by
// limit downstream.
func validatePagination(limit, offset int) error {
	if limit < 1 {
		return models.ErrorValidation{Message: "limit must be at least 1"}
	}
	if offset < 0 {
		return models.ErrorValidation{Message: "offset must not be negative"}
	}
	return nil
}
