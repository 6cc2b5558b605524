package domain

import "time"

// Article is a content entry managed through the admin console.
//
// CreatedAt is fixed at construction and never changes. UpdatedAt is bumped
// by every mutator and is guaranteed strictly increasing even when two
// mutations land on the same clock reading.
type Article struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	IsPublished      bool      `json:"is_published"`
	AuthorID         int64     `json:"author_id,omitempty"`
	LastModifiedByID int64     `json:"last_modified_by_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewArticle constructs an article with both timestamps set to now.
func NewArticle(title, content string, authorID int64) *Article {
	now := time.Now().UTC()
	return &Article{
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (a *Article) SetTitle(title string) {
	a.Title = title
	a.touch()
}

func (a *Article) SetContent(content string) {
	a.Content = content
	a.touch()
}

func (a *Article) Publish() {
	a.IsPublished = true
	a.touch()
}

func (a *Article) Unpublish() {
	a.IsPublished = false
	a.touch()
}

func (a *Article) SetPublished(published bool) {
	a.IsPublished = published
	a.touch()
}

// SetAuthor assigns the author. It does not touch UpdatedAt: authorship is
// bookkeeping applied at first persist, not a content mutation.
func (a *Article) SetAuthor(userID int64) {
	a.AuthorID = userID
}

func (a *Article) SetLastModifiedBy(userID int64) {
	a.LastModifiedByID = userID
	a.touch()
}

// Touch bumps the modification timestamp without changing any field.
func (a *Article) Touch() {
	a.touch()
}

// touch advances UpdatedAt. When the clock has not moved past the previous
// value (coarse clocks, rapid successive mutations) the timestamp is nudged
// forward by a nanosecond to keep it strictly increasing.
func (a *Article) touch() {
	now := time.Now().UTC()
	if !now.After(a.UpdatedAt) {
		now = a.UpdatedAt.Add(time.Nanosecond)
	}
	a.UpdatedAt = now
}
