package domain

import "github.com/google/uuid"

// Settings is the site-wide editorial configuration. There is at most one
// instance; a missing instance means nothing is featured yet.
type Settings struct {
	FeaturedArticleID *uuid.UUID `json:"featuredArticleId,omitempty"`
	TopPicks          []TopPick  `json:"topPickArticles"`
}

type TopPick struct {
	ArticleID    uuid.UUID `json:"articleId"`
	DisplayOrder int       `json:"displayOrder"`
}
