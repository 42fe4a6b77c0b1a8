package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/drivelane/drivelane/drivelane/config"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByRef(ctx context.Context, ref string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastSeen(ctx context.Context, id int64) error

	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

type userRepository struct {
	db   *bun.DB
	base *BaseRepository
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{
		db:   db,
		base: NewBaseRepository(db),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.User)(nil)).
		Where("username = ?", user.Username).
		Exists(ctx)
	if err != nil {
		return r.base.HandleError("create", "user", err)
	}
	if exists {
		return &ConflictError{Entity: "user", Field: "username", Value: user.Username}
	}

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err = r.db.NewInsert().
		Model(user).
		Returning("id").
		Exec(ctx)

	return r.base.HandleError("create", "user", err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.base.HandleErrorWithID("get", "user", id, err)
	}

	return user, nil
}

func (r *userRepository) GetByRef(ctx context.Context, ref string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("ref = ?", ref).
		Scan(ctx)
	if err != nil {
		return nil, r.base.HandleErrorWithID("get", "user", ref, err)
	}

	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("LOWER(username) = LOWER(?)", username).
		Scan(ctx)
	if err != nil {
		return nil, r.base.HandleErrorWithID("get", "user", username, err)
	}

	return user, nil
}

func (r *userRepository) UpdateLastSeen(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("last_seen = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)

	return r.base.HandleError("update_last_seen", "user", err)
}

func (r *userRepository) CreateSession(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	session.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(session).
		Exec(ctx)

	return r.base.HandleError("create", "session", err)
}

// GetSession resolves a bearer token, loading the owning user alongside.
func (r *userRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	session := new(models.Session)
	err := r.db.NewSelect().
		Model(session).
		Relation("User").
		Where("token = ?", token).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "session", ID: "token"}
		}
		return nil, r.base.HandleError("get", "session", err)
	}

	if session.Expired() {
		_ = r.DeleteSession(context.WithoutCancel(ctx), token)
		return nil, &NotFoundError{Entity: "session", ID: "token"}
	}

	return session, nil
}

func (r *userRepository) DeleteSession(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	_, err := r.db.NewDelete().
		Model((*models.Session)(nil)).
		Where("token = ?", token).
		Exec(ctx)

	return r.base.HandleError("delete", "session", err)
}

func (r *userRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.Session)(nil)).
		Where("expires_at < ?", time.Now()).
		Exec(ctx)
	if err != nil {
		return 0, r.base.HandleError("delete_expired", "session", err)
	}

	affected, _ := res.RowsAffected()
	return affected, nil
}
