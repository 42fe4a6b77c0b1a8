package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is a marketplace account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64  `bun:"id,pk,autoincrement"`
	Ref       string `bun:"ref,notnull,unique"`
	Username  string `bun:"username,notnull,unique"`
	Email     string `bun:"email,notnull"`
	IsAdmin   bool   `bun:"is_admin,notnull,default:false"`
	LastSeen  time.Time `bun:"last_seen"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Session is a server-side session row; the bearer token presented by
// clients is the signed form of Token.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Token     string    `bun:"token,notnull,unique"`
	UserID    int64     `bun:"user_id,notnull"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`

	User *User `bun:"rel:belongs-to,join:user_id=id"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
