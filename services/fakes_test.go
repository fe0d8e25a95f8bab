package services

import (
	"sort"
	"time"

	"conduit-api/models"

	"gorm.io/gorm"
)

// In-memory repository fakes. They honor the same contracts as the gorm
// implementations: gorm.ErrRecordNotFound for missing rows, associations
// loaded on reads, newest-first article listings with stable ties.

type fakeUserRepo struct {
	seq   uint
	users map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.seq++
	user.ID = r.seq
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u := *stored
	return &u, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, stored := range r.users {
		if stored.Username == username {
			u := *stored
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, stored := range r.users {
		if stored.Email == email {
			u := *stored
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := r.GetByEmail(email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) ExistsByUsername(username string) (bool, error) {
	_, err := r.GetByUsername(username)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) AddFollowing(user *models.User, target *models.User) error {
	stored := r.users[user.ID]
	stored.Following = append(stored.Following, *r.users[target.ID])
	return nil
}

func (r *fakeUserRepo) RemoveFollowing(user *models.User, target *models.User) error {
	stored := r.users[user.ID]
	kept := stored.Following[:0]
	for _, f := range stored.Following {
		if f.ID != target.ID {
			kept = append(kept, f)
		}
	}
	stored.Following = kept
	return nil
}

type fakeArticleRepo struct {
	seq      uint
	now      time.Time
	users    *fakeUserRepo
	articles []*models.Article
}

func newFakeArticleRepo(users *fakeUserRepo) *fakeArticleRepo {
	return &fakeArticleRepo{
		now:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users: users,
	}
}

func (r *fakeArticleRepo) Create(article *models.Article) error {
	r.seq++
	article.ID = r.seq
	r.now = r.now.Add(time.Minute)
	article.CreatedAt = r.now
	article.UpdatedAt = r.now
	if author, ok := r.users.users[article.AuthorID]; ok {
		article.Author = *author
	}
	stored := *article
	r.articles = append(r.articles, &stored)
	return nil
}

func (r *fakeArticleRepo) GetBySlug(slug string) (*models.Article, error) {
	for _, stored := range r.articles {
		if stored.Slug == slug {
			a := *stored
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeArticleRepo) ExistsBySlug(slug string) (bool, error) {
	_, err := r.GetBySlug(slug)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeArticleRepo) GetList(params models.ArticleListParams, favoritedByID uint) ([]models.Article, int64, error) {
	var matches []models.Article
	for _, stored := range r.articles {
		if params.Tag != "" && !hasTag(stored, params.Tag) {
			continue
		}
		if params.Author != "" && stored.Author.Username != params.Author {
			continue
		}
		if favoritedByID > 0 && !stored.IsFavoritedBy(favoritedByID) {
			continue
		}
		matches = append(matches, *stored)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	total := int64(len(matches))
	return paginate(matches, params.Limit, params.Offset), total, nil
}

func (r *fakeArticleRepo) GetFeed(authorIDs []uint, limit, offset int) ([]models.Article, int64, error) {
	ids := map[uint]bool{}
	for _, id := range authorIDs {
		ids[id] = true
	}
	var matches []models.Article
	for _, stored := range r.articles {
		if ids[stored.AuthorID] {
			matches = append(matches, *stored)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	total := int64(len(matches))
	return paginate(matches, limit, offset), total, nil
}

func (r *fakeArticleRepo) Update(article *models.Article) error {
	for i, stored := range r.articles {
		if stored.ID == article.ID {
			updated := *article
			r.articles[i] = &updated
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeArticleRepo) Delete(article *models.Article) error {
	for i, stored := range r.articles {
		if stored.ID == article.ID {
			r.articles = append(r.articles[:i], r.articles[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeArticleRepo) AddFavorite(article *models.Article, user *models.User) error {
	for _, stored := range r.articles {
		if stored.ID == article.ID {
			stored.FavoritedBy = append(stored.FavoritedBy, *user)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeArticleRepo) RemoveFavorite(article *models.Article, user *models.User) error {
	for _, stored := range r.articles {
		if stored.ID == article.ID {
			kept := stored.FavoritedBy[:0]
			for _, u := range stored.FavoritedBy {
				if u.ID != user.ID {
					kept = append(kept, u)
				}
			}
			stored.FavoritedBy = kept
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func hasTag(article *models.Article, name string) bool {
	for _, t := range article.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

func paginate(articles []models.Article, limit, offset int) []models.Article {
	if offset >= len(articles) {
		return nil
	}
	end := offset + limit
	if end > len(articles) {
		end = len(articles)
	}
	return articles[offset:end]
}

type fakeTagRepo struct {
	seq  uint
	tags map[string]*models.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: map[string]*models.Tag{}}
}

func (r *fakeTagRepo) Create(tag *models.Tag) error {
	r.seq++
	tag.ID = r.seq
	stored := *tag
	r.tags[tag.Name] = &stored
	return nil
}

func (r *fakeTagRepo) GetByName(name string) (*models.Tag, error) {
	stored, ok := r.tags[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	t := *stored
	return &t, nil
}

func (r *fakeTagRepo) ListUsedNames() ([]string, error) {
	names := make([]string, 0, len(r.tags))
	for name := range r.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type fakeCommentRepo struct {
	seq      uint
	comments []*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Create(comment *models.Comment) error {
	r.seq++
	comment.ID = r.seq
	stored := *comment
	r.comments = append(r.comments, &stored)
	return nil
}

func (r *fakeCommentRepo) GetByIDAndArticle(id uint, slug string) (*models.Comment, error) {
	for _, stored := range r.comments {
		if stored.ID == id && stored.ArticleSlug == slug {
			c := *stored
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) ListByArticle(slug string) ([]models.Comment, error) {
	var comments []models.Comment
	for _, stored := range r.comments {
		if stored.ArticleSlug == slug {
			comments = append(comments, *stored)
		}
	}
	return comments, nil
}

func (r *fakeCommentRepo) Delete(comment *models.Comment) error {
	for i, stored := range r.comments {
		if stored.ID == comment.ID {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeTokenRepo struct {
	accessSeq  uint
	refreshSeq uint
	access     map[uint]*models.AccessToken
	refresh    map[uint]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		access:  map[uint]*models.AccessToken{},
		refresh: map[uint]*models.RefreshToken{},
	}
}

func (r *fakeTokenRepo) CreateAccessToken(token *models.AccessToken) error {
	r.accessSeq++
	token.ID = r.accessSeq
	stored := *token
	r.access[token.ID] = &stored
	return nil
}

func (r *fakeTokenRepo) CreateRefreshToken(token *models.RefreshToken) error {
	r.refreshSeq++
	token.ID = r.refreshSeq
	stored := *token
	r.refresh[token.ID] = &stored
	return nil
}

func (r *fakeTokenRepo) GetAccessToken(id uint) (*models.AccessToken, error) {
	stored, ok := r.access[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	t := *stored
	return &t, nil
}

func (r *fakeTokenRepo) GetRefreshToken(id uint) (*models.RefreshToken, error) {
	stored, ok := r.refresh[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	t := *stored
	return &t, nil
}

func (r *fakeTokenRepo) UpdateAccessToken(token *models.AccessToken) error {
	if _, ok := r.access[token.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *token
	r.access[token.ID] = &stored
	return nil
}

func (r *fakeTokenRepo) UpdateRefreshToken(token *models.RefreshToken) error {
	if _, ok := r.refresh[token.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *token
	r.refresh[token.ID] = &stored
	return nil
}
