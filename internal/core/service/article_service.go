package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
)

// ArticleService implements article use-cases. Authorship bookkeeping runs
// as explicit pre-save hooks: the actor is a parameter, never pulled from
// ambient state, and a nil actor skips the bookkeeping entirely.
type ArticleService struct {
	articles ports.ArticleRepository
	users    ports.UserRepository
	audit    ports.AuditService
	log      zerolog.Logger
}

func NewArticleService(articles ports.ArticleRepository, users ports.UserRepository, audit ports.AuditService, log zerolog.Logger) *ArticleService {
	return &ArticleService{articles: articles, users: users, audit: audit, log: log}
}

func (s *ArticleService) List(ctx context.Context, filter ports.ListArticlesFilter) ([]*ports.ArticleDetail, error) {
	var (
		articles []*domain.Article
		err      error
	)
	switch {
	case filter.AuthorID != 0:
		articles, err = s.articles.FindByAuthor(ctx, filter.AuthorID)
	case filter.PublishedOnly:
		articles, err = s.articles.FindPublished(ctx)
	default:
		articles, err = s.articles.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	details := make([]*ports.ArticleDetail, len(articles))
	for i, a := range articles {
		details[i] = s.toDetail(ctx, a)
	}
	return details, nil
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*ports.ArticleDetail, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDetail(ctx, article), nil
}

func (s *ArticleService) Create(ctx context.Context, actor *ports.Identity, input ports.CreateArticleInput) (*ports.ArticleDetail, error) {
	article := domain.NewArticle(input.Title, input.Content, 0)
	article.IsPublished = input.IsPublished

	// Pre-save hook: first persist assigns the current identity as author
	// when none is set.
	if article.AuthorID == 0 && actor != nil {
		article.SetAuthor(actor.UserID)
	}

	if err := s.articles.Save(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.recordWrite(ctx, actor, domain.ActionArticleWrite, article.ID)
	s.log.Info().Int64("article_id", article.ID).Msg("article created")

	return s.toDetail(ctx, article), nil
}

func (s *ArticleService) Update(ctx context.Context, actor *ports.Identity, id int64, input ports.UpdateArticleInput) (*ports.ArticleDetail, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		article.SetTitle(*input.Title)
	}
	if input.Content != nil {
		article.SetContent(*input.Content)
	}
	if input.IsPublished != nil {
		article.SetPublished(*input.IsPublished)
	}

	s.applyModifiedBy(article, actor)

	if err := s.articles.Save(ctx, article); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	s.recordWrite(ctx, actor, domain.ActionArticleWrite, article.ID)
	return s.toDetail(ctx, article), nil
}

func (s *ArticleService) Replace(ctx context.Context, actor *ports.Identity, id int64, input ports.CreateArticleInput) (*ports.ArticleDetail, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	article.SetTitle(input.Title)
	article.SetContent(input.Content)
	article.SetPublished(input.IsPublished)
	s.applyModifiedBy(article, actor)

	if err := s.articles.Save(ctx, article); err != nil {
		return nil, fmt.Errorf("replace article: %w", err)
	}

	s.recordWrite(ctx, actor, domain.ActionArticleWrite, article.ID)
	return s.toDetail(ctx, article), nil
}

func (s *ArticleService) Delete(ctx context.Context, actor *ports.Identity, id int64) error {
	if _, err := s.articles.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.articles.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	s.recordWrite(ctx, actor, domain.ActionArticleDelete, id)
	s.log.Info().Int64("article_id", id).Msg("article deleted")
	return nil
}

// applyModifiedBy is the pre-save hook for updates: a known actor overwrites
// last-modified-by, an unknown actor leaves the previous value untouched.
func (s *ArticleService) applyModifiedBy(article *domain.Article, actor *ports.Identity) {
	if actor == nil {
		return
	}
	article.SetLastModifiedBy(actor.UserID)
}

// toDetail resolves author references to sanitized user views. Lookup
// failures are treated as "no identity" rather than propagated.
func (s *ArticleService) toDetail(ctx context.Context, a *domain.Article) *ports.ArticleDetail {
	return &ports.ArticleDetail{
		ID:             a.ID,
		Title:          a.Title,
		Content:        a.Content,
		IsPublished:    a.IsPublished,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Author:         s.userView(ctx, a.AuthorID),
		LastModifiedBy: s.userView(ctx, a.LastModifiedByID),
	}
}

func (s *ArticleService) userView(ctx context.Context, id int64) *domain.PublicUser {
	if id == 0 {
		return nil
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	pub := user.Public()
	return &pub
}

func (s *ArticleService) recordWrite(ctx context.Context, actor *ports.Identity, action string, articleID int64) {
	if s.audit == nil {
		return
	}
	actorEmail := ""
	if actor != nil {
		actorEmail = actor.Email
	}
	event := domain.AuthEvent{
		Actor:     actorEmail,
		Action:    action,
		Subject:   fmt.Sprintf("article:%d", articleID),
		Timestamp: time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("action", action).Msg("failed to record audit event")
	}
}
