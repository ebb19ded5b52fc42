package model

import (
	"strings"
	"time"

	"github.com/zjurelinac/East/src/apimodel"
)

// Article represents a published or draft piece written by a user.
type Article struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AuthorID  uint   `gorm:"index;not null" json:"author_id"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Slug      string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Body      string `gorm:"type:text" json:"body"`
	Published bool   `gorm:"not null;default:false" json:"published"`
	Score     float64 `json:"score"`
	Rating    float32 `json:"rating"`
	ViewCount int64   `gorm:"type:bigint" json:"view_count"`
	PublishedOn *time.Time `gorm:"type:date" json:"published_on,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Belongs to User
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`

	// One-to-many relation: one article can have many comments.
	Comments []Comment `gorm:"foreignKey:ArticleID" json:"comments,omitempty"`
}

// TableName allows you to control the exact table name for articles.
func (Article) TableName() string {
	return "articles"
}

// SerializationViews declares the serialization views for articles.
func (Article) SerializationViews() apimodel.Views {
	return apimodel.Views{
		"summary": {"id", "title", "slug", "published", "score", "author"},
		"full": {"id", "title", "slug", "body", "published", "score",
			"rating", "view_count", "published_on", "created_at",
			"author", "comments", "excerpt", "reading_time"},
	}
}

// ComputedAttrs declares the derived attributes available to views.
func (Article) ComputedAttrs() map[string]apimodel.Computed {
	return map[string]apimodel.Computed{
		"author": {
			Fn: func(m any) any {
				a := m.(Article)
				if a.Author == nil {
					return nil
				}
				return *a.Author
			},
			Result: apimodel.ViewOf(User{}, "summary"),
		},
		"comments": {
			Fn:     func(m any) any { return m.(Article).Comments },
			Result: apimodel.ListViewOf(Comment{}, "summary"),
		},
		"excerpt": {
			Fn:     func(m any) any { return m.(Article).Excerpt() },
			Result: apimodel.Of(""),
		},
		// TODO: document once the estimate counts embedded media as well.
		"reading_time": {
			Fn: func(m any) any { return m.(Article).ReadingTimeMinutes() },
		},
	}
}

const excerptLength = 200

// Excerpt returns the first words of the body, capped at excerptLength
// characters.
func (a Article) Excerpt() string {
	body := strings.TrimSpace(a.Body)
	if len(body) <= excerptLength {
		return body
	}
	cut := body[:excerptLength]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// ReadingTimeMinutes estimates reading time at 200 words per minute.
func (a Article) ReadingTimeMinutes() int {
	words := len(strings.Fields(a.Body))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
