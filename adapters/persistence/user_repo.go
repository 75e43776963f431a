package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/eduhire/eduhire-api/internal/domain/profile"
	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/apperror"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

type postgresUserRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresUserRepo(db *pgxpool.Pool, logger logger.Logger) user.Repository {
	return &postgresUserRepo{db: db, logger: logger}
}

var psqlUser = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const uniqueViolation = "23505"

func scanUser(row pgx.Row, l logger.Logger) (*user.User, error) {
	u := &user.User{}
	var passwordHash *string
	var profileBytes, statsBytes, activityBytes []byte

	err := row.Scan(
		&u.ID,
		&u.Email,
		&passwordHash,
		&u.AuthProvider,
		&u.CreatedViaSocial,
		&profileBytes,
		&statsBytes,
		&activityBytes,
		&u.CreatedAt,
		&u.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperror.NewInternal("failed to scan user row", err)
	}

	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}

	if err := json.Unmarshal(profileBytes, &u.Profile); err != nil {
		l.Warn("Failed to unmarshal profile", zap.String("user_id", u.ID.String()), zap.Error(err))
		u.Profile = profile.New()
	}
	if err := json.Unmarshal(statsBytes, &u.DashboardStats); err != nil {
		l.Warn("Failed to unmarshal dashboard_stats", zap.String("user_id", u.ID.String()), zap.Error(err))
		u.DashboardStats = user.DashboardStats{}
	}
	if err := json.Unmarshal(activityBytes, &u.ActivityLog); err != nil {
		l.Warn("Failed to unmarshal activity_log", zap.String("user_id", u.ID.String()), zap.Error(err))
		u.ActivityLog = []user.ActivityEntry{}
	}

	return u, nil
}

func marshalUserDocs(u *user.User) (profileBytes, statsBytes, activityBytes []byte, err error) {
	profileBytes, err = json.Marshal(u.Profile)
	if err != nil {
		return nil, nil, nil, apperror.NewInternal("failed to marshal profile", err)
	}
	statsBytes, err = json.Marshal(u.DashboardStats)
	if err != nil {
		return nil, nil, nil, apperror.NewInternal("failed to marshal dashboard_stats", err)
	}
	activityBytes, err = json.Marshal(u.ActivityLog)
	if err != nil {
		return nil, nil, nil, apperror.NewInternal("failed to marshal activity_log", err)
	}
	return profileBytes, statsBytes, activityBytes, nil
}

func (r *postgresUserRepo) Create(ctx context.Context, u *user.User) error {
	profileBytes, statsBytes, activityBytes, err := marshalUserDocs(u)
	if err != nil {
		return err
	}

	var passwordHash *string
	if u.PasswordHash != "" {
		passwordHash = &u.PasswordHash
	}

	query := `
		INSERT INTO users (id, email, password_hash, auth_provider, created_via_social,
			profile, dashboard_stats, activity_log, created_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.db.Exec(ctx, query,
		u.ID, u.Email, passwordHash, u.AuthProvider, u.CreatedViaSocial,
		profileBytes, statsBytes, activityBytes, u.CreatedAt, u.LastUpdated,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrEmailTaken
		}
		return apperror.NewInternal("failed to insert user", err)
	}
	return nil
}

// Update writes the whole document back in one row update: the merge
// result either lands completely or not at all.
func (r *postgresUserRepo) Update(ctx context.Context, u *user.User) error {
	profileBytes, statsBytes, activityBytes, err := marshalUserDocs(u)
	if err != nil {
		return err
	}

	query := `
		UPDATE users SET
			profile = $2, dashboard_stats = $3, activity_log = $4, last_updated = $5
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		u.ID, profileBytes, statsBytes, activityBytes, u.LastUpdated,
	)
	if err != nil {
		return apperror.NewInternal("failed to update user", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepo) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, hash)
	if err != nil {
		return apperror.NewInternal("failed to set password hash", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

const userColumns = `id, email, password_hash, auth_provider, created_via_social,
		profile, dashboard_stats, activity_log, created_at, last_updated`

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	row := r.db.QueryRow(ctx, query, email)
	return scanUser(row, r.logger)
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	row := r.db.QueryRow(ctx, query, id)
	return scanUser(row, r.logger)
}

// ListActivity pages through the activity_log array without pulling
// the whole document. The array is stored newest first, so ordinality
// order is already the read order.
func (r *postgresUserRepo) ListActivity(ctx context.Context, id uuid.UUID, limit, offset int) ([]user.ActivityEntry, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, apperror.NewInternal("failed to check user existence", err)
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	builder := psqlUser.Select("entry.value").
		From("users").
		CrossJoin("LATERAL jsonb_array_elements(users.activity_log) WITH ORDINALITY AS entry(value, ord)").
		Where(sq.Eq{"users.id": id}).
		OrderBy("entry.ord").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build activity query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query activity log", err)
	}
	defer rows.Close()

	entries := make([]user.ActivityEntry, 0)
	for rows.Next() {
		var entryBytes []byte
		if err := rows.Scan(&entryBytes); err != nil {
			return nil, apperror.NewInternal("failed to scan activity entry", err)
		}
		var entry user.ActivityEntry
		if err := json.Unmarshal(entryBytes, &entry); err != nil {
			r.logger.Warn("Failed to unmarshal activity entry", zap.String("user_id", id.String()), zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating activity entries", err)
	}
	return entries, nil
}

func (r *postgresUserRepo) IncrementStat(ctx context.Context, id uuid.UUID, stat user.Stat) error {
	switch stat {
	case user.StatProfileViews, user.StatApplications, user.StatInterviews:
	default:
		return apperror.NewInvalidInput(fmt.Sprintf("unknown dashboard stat '%s'", stat), nil)
	}

	query := `
		UPDATE users SET dashboard_stats = jsonb_set(
			dashboard_stats, $2,
			(COALESCE(dashboard_stats->>$3, '0')::int + 1)::text::jsonb
		)
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, id, []string{string(stat)}, string(stat))
	if err != nil {
		return apperror.NewInternal("failed to increment dashboard stat", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
