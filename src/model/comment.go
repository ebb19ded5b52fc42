package model

import (
	"time"

	"github.com/zjurelinac/East/src/apimodel"
)

// Comment represents a reader's comment on an article.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index;not null" json:"article_id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	PostedAt  time.Time `gorm:"type:timestamp" json:"posted_at"`

	// Belongs to User
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// TableName allows you to control the exact table name for comments.
func (Comment) TableName() string {
	return "comments"
}

// SerializationViews declares the serialization views for comments.
func (Comment) SerializationViews() apimodel.Views {
	return apimodel.Views{
		"summary": {"id", "body", "posted_at", "author"},
	}
}

// ComputedAttrs declares the derived attributes available to views.
func (Comment) ComputedAttrs() map[string]apimodel.Computed {
	return map[string]apimodel.Computed{
		"author": {
			Fn: func(m any) any {
				c := m.(Comment)
				if c.Author == nil {
					return nil
				}
				return *c.Author
			},
			Result: apimodel.ViewOf(User{}, "summary"),
		},
	}
}
