package domain

import (
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	ID        uuid.UUID        `json:"id"`
	ArticleID uuid.UUID        `json:"articleId"`
	UserID    uuid.UUID        `json:"userId"`
	Article   *BookmarkArticle `json:"article,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// BookmarkArticle is the slim article projection returned with bookmark lists.
type BookmarkArticle struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}
