package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SavedComparison is a user-bookmarked pair of listings together with
// the summary that was computed when it was saved.
type SavedComparison struct {
	bun.BaseModel `bun:"table:saved_comparisons,alias:sc"`

	ID        int64  `bun:"id,pk,autoincrement"`
	Ref       string `bun:"ref,notnull,unique"`
	UserID    int64  `bun:"user_id,notnull"`
	FirstRef  string `bun:"first_ref,notnull"`
	SecondRef string `bun:"second_ref,notnull"`
	Summary   []byte `bun:"summary,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
