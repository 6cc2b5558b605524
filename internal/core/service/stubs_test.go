package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blogcms/admin-api/internal/core/domain"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Remove(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubArticleRepo struct {
	mu       sync.Mutex
	articles map[int64]*domain.Article
	nextID   int64
	saveErr  error
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[int64]*domain.Article)}
}

func cloneArticle(a *domain.Article) *domain.Article {
	clone := *a
	return &clone
}

func (r *stubArticleRepo) FindByID(_ context.Context, id int64) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.articles[id]; ok {
		return cloneArticle(a), nil
	}
	return nil, domain.ErrArticleNotFound
}

func (r *stubArticleRepo) FindByTitle(_ context.Context, title string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.Title == title {
			return cloneArticle(a), nil
		}
	}
	return nil, domain.ErrArticleNotFound
}

func (r *stubArticleRepo) FindAll(_ context.Context) ([]*domain.Article, error) {
	return r.filtered(func(*domain.Article) bool { return true }), nil
}

func (r *stubArticleRepo) FindByAuthor(_ context.Context, authorID int64) ([]*domain.Article, error) {
	return r.filtered(func(a *domain.Article) bool { return a.AuthorID == authorID }), nil
}

func (r *stubArticleRepo) FindPublished(_ context.Context) ([]*domain.Article, error) {
	return r.filtered(func(a *domain.Article) bool { return a.IsPublished }), nil
}

func (r *stubArticleRepo) filtered(keep func(*domain.Article) bool) []*domain.Article {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if keep(a) {
			out = append(out, cloneArticle(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *stubArticleRepo) Save(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if article.ID == 0 {
		r.nextID++
		article.ID = r.nextID
	}
	r.articles[article.ID] = cloneArticle(article)
	return nil
}

func (r *stubArticleRepo) Remove(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

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

type stubAuditRepo struct {
	mu        sync.Mutex
	events    []*domain.AuthEvent
	insertErr error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *stubAuditRepo) LastLogin(_ context.Context) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last time.Time
	for _, e := range r.events {
		if e.Action == domain.ActionLogin && e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}
	return last, nil
}
