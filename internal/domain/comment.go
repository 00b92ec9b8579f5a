package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a plain-text comment on an article. ParentID is nil for
// top-level comments; once set at creation it never changes.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	ArticleID uuid.UUID  `json:"articleId"`
	AuthorID  uuid.UUID  `json:"authorId"`
	Author    *Author    `json:"author,omitempty"`
	ParentID  *uuid.UUID `json:"parentCommentId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
