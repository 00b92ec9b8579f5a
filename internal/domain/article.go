package domain

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	TimeToRead   string    `json:"timeToRead"`
	Category     string    `json:"category"`
	Src          *string   `json:"src,omitempty"`
	VideoArticle bool      `json:"videoArticle"`
	TimesViewed  int64     `json:"timesViewed"`
	AuthorID     uuid.UUID `json:"authorId"`
	Author       *Author   `json:"author,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Author is the public projection of a user attached to articles and comments.
type Author struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// ArticlePatch carries the optional fields of a partial article update.
// A nil field means "not supplied"; Empty reports whether no recognized
// field was supplied at all.
type ArticlePatch struct {
	Title        *string
	Content      *string
	TimeToRead   *string
	Category     *string
	Src          *string
	VideoArticle *bool
}

func (p ArticlePatch) Empty() bool {
	return p.Title == nil &&
		p.Content == nil &&
		p.TimeToRead == nil &&
		p.Category == nil &&
		p.Src == nil &&
		p.VideoArticle == nil
}

// CategoryArticles is one bucket of the top-categories aggregation: a
// category with its total non-video article count and a page of articles.
type CategoryArticles struct {
	Category string    `json:"category"`
	Count    int64     `json:"count"`
	Articles []Article `json:"articles"`
}

// CategorySummary is one row of the all-categories aggregation.
type CategorySummary struct {
	Category     string  `json:"category"`
	ArticleCount int64   `json:"articleCount"`
	VideoCount   int64   `json:"videoCount"`
	TotalCount   int64   `json:"totalCount"`
	Image        *string `json:"image"`
}
