package handler

import (
	"context"
	"sync"
	"time"

	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
)

// fakeAuthService authenticates exactly one known credential pair.
type fakeAuthService struct {
	email    string
	password string
	user     domain.PublicUser
	token    string
}

func (s *fakeAuthService) Login(_ context.Context, email, password string) (*ports.LoginResult, error) {
	if email != s.email || password != s.password {
		return nil, domain.ErrInvalidCredentials
	}
	return &ports.LoginResult{User: s.user, Token: s.token}, nil
}

func (s *fakeAuthService) VerifyToken(token string) (*ports.Identity, error) {
	if token != s.token || s.token == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return &ports.Identity{UserID: s.user.ID, Email: s.user.Email, Roles: s.user.Roles}, nil
}

// captureAudit records events synchronously for assertions.
type captureAudit struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (a *captureAudit) Record(_ context.Context, event domain.AuthEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return nil
}

func (a *captureAudit) all() []domain.AuthEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.AuthEvent(nil), a.events...)
}

// fakeArticleService records the last call and replies from canned data.
type fakeArticleService struct {
	mu         sync.Mutex
	details    map[int64]*ports.ArticleDetail
	lastActor  *ports.Identity
	lastFilter ports.ListArticlesFilter
	lastInput  any
	nextID     int64
}

func newFakeArticleService() *fakeArticleService {
	return &fakeArticleService{details: make(map[int64]*ports.ArticleDetail), nextID: 1}
}

func (s *fakeArticleService) List(_ context.Context, filter ports.ListArticlesFilter) ([]*ports.ArticleDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = filter

	out := make([]*ports.ArticleDetail, 0, len(s.details))
	for _, d := range s.details {
		if filter.PublishedOnly && !d.IsPublished {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeArticleService) Get(_ context.Context, id int64) (*ports.ArticleDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.details[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return d, nil
}

func (s *fakeArticleService) Create(_ context.Context, actor *ports.Identity, input ports.CreateArticleInput) (*ports.ArticleDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActor = actor
	s.lastInput = input

	now := time.Now().UTC()
	d := &ports.ArticleDetail{
		ID:          s.nextID,
		Title:       input.Title,
		Content:     input.Content,
		IsPublished: input.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.details[d.ID] = d
	s.nextID++
	return d, nil
}

func (s *fakeArticleService) Update(_ context.Context, actor *ports.Identity, id int64, input ports.UpdateArticleInput) (*ports.ArticleDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActor = actor
	s.lastInput = input

	d, ok := s.details[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	if input.Title != nil {
		d.Title = *input.Title
	}
	if input.Content != nil {
		d.Content = *input.Content
	}
	if input.IsPublished != nil {
		d.IsPublished = *input.IsPublished
	}
	return d, nil
}

func (s *fakeArticleService) Replace(_ context.Context, actor *ports.Identity, id int64, input ports.CreateArticleInput) (*ports.ArticleDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActor = actor
	s.lastInput = input

	d, ok := s.details[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	d.Title = input.Title
	d.Content = input.Content
	d.IsPublished = input.IsPublished
	return d, nil
}

func (s *fakeArticleService) Delete(_ context.Context, actor *ports.Identity, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActor = actor

	if _, ok := s.details[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(s.details, id)
	return nil
}

// stubUserRepo serves a fixed user list for admin endpoints.
type stubUserRepo struct {
	users []*domain.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	return append([]*domain.User(nil), r.users...), nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *stubUserRepo) Remove(_ context.Context, id int64) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// stubArticleRepo serves a fixed article list for admin endpoints.
type stubArticleRepo struct {
	articles []*domain.Article
}

func (r *stubArticleRepo) FindByID(_ context.Context, id int64) (*domain.Article, error) {
	for _, a := range r.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrArticleNotFound
}

func (r *stubArticleRepo) FindByTitle(_ context.Context, title string) (*domain.Article, error) {
	for _, a := range r.articles {
		if a.Title == title {
			return a, nil
		}
	}
	return nil, domain.ErrArticleNotFound
}

func (r *stubArticleRepo) FindAll(_ context.Context) ([]*domain.Article, error) {
	return append([]*domain.Article(nil), r.articles...), nil
}

func (r *stubArticleRepo) FindByAuthor(_ context.Context, authorID int64) ([]*domain.Article, error) {
	var out []*domain.Article
	for _, a := range r.articles {
		if a.AuthorID == authorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubArticleRepo) FindPublished(_ context.Context) ([]*domain.Article, error) {
	var out []*domain.Article
	for _, a := range r.articles {
		if a.IsPublished {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubArticleRepo) Save(_ context.Context, article *domain.Article) error {
	r.articles = append(r.articles, article)
	return nil
}

func (r *stubArticleRepo) Remove(_ context.Context, id int64) error {
	for i, a := range r.articles {
		if a.ID == id {
			r.articles = append(r.articles[:i], r.articles[i+1:]...)
			return nil
		}
	}
	return domain.ErrArticleNotFound
}

// stubAuditRepo returns a canned last login timestamp.
type stubAuditRepo struct {
	lastLogin time.Time
	events    []domain.AuthEvent
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	r.events = append(r.events, *event)
	return nil
}

func (r *stubAuditRepo) LastLogin(_ context.Context) (time.Time, error) {
	return r.lastLogin, nil
}
