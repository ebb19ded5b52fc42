package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zjurelinac/East/src/apimodel"
)

// User represents a registered account able to publish articles and
// comments.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:60;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	Bio      string `gorm:"type:text" json:"bio"`
	Active   bool   `gorm:"not null;default:true" json:"active"`
	Karma    int    `json:"karma"`
	// Balance holds publishing credits, kept as decimal to avoid float
	// rounding on money-like values.
	Balance   decimal.Decimal `gorm:"type:decimal(20,8)" json:"balance"`
	BirthDate *time.Time      `gorm:"type:date" json:"birth_date,omitempty"`
	// DigestAt is the local wall-clock time (HH:MM:SS) the daily digest
	// email goes out.
	DigestAt  string    `gorm:"type:time" json:"digest_at"`
	APIToken  string    `gorm:"size:64;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// One-to-many relation: one user can author many articles.
	Articles []Article `gorm:"foreignKey:AuthorID" json:"articles,omitempty"`
}

// TableName allows you to control the exact table name for users.
func (User) TableName() string {
	return "users"
}

// SerializationViews declares the serialization views for users.
func (User) SerializationViews() apimodel.Views {
	return apimodel.Views{
		"summary": {"id", "username", "karma"},
		"profile": {"id", "username", "email", "bio", "active", "karma",
			"balance", "birth_date", "digest_at", "created_at",
			"member_for", "article_count"},
	}
}

// ComputedAttrs declares the derived attributes available to views.
func (User) ComputedAttrs() map[string]apimodel.Computed {
	return map[string]apimodel.Computed{
		"member_for": {
			Fn: func(m any) any {
				u := m.(User)
				return int(time.Since(u.CreatedAt).Hours() / 24)
			},
			Result: apimodel.Of(0),
		},
		"article_count": {
			Fn:     func(m any) any { return len(m.(User).Articles) },
			Result: apimodel.Of(0),
		},
	}
}
