package handler

import (
	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
)

// --- Service result → HTTP response ---

func toUserResponse(u *domain.PublicUser) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{ID: u.ID, Email: u.Email, Roles: u.Roles}
}

func toArticleResponse(d *ports.ArticleDetail) articleResponse {
	return articleResponse{
		ID:             d.ID,
		Title:          d.Title,
		Content:        d.Content,
		IsPublished:    d.IsPublished,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
		Author:         toUserResponse(d.Author),
		LastModifiedBy: toUserResponse(d.LastModifiedBy),
	}
}

func toListResponse(details []*ports.ArticleDetail) listArticlesResponse {
	items := make([]articleResponse, len(details))
	for i, d := range details {
		items[i] = toArticleResponse(d)
	}
	return listArticlesResponse{Articles: items, Total: len(items)}
}
