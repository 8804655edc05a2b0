package mysql

import (
	"context"
	"database/sql"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// UserRepository implements ports.UserRepository on MySQL.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) ports.UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, role, avatar_url, created_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, name, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.Email, user.Name, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return 0, domain.ErrDuplicateIdentity
		}
		return 0, dbError("create user", err, nil)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, dbError("create user", err, nil)
	}
	return id, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser("find user by email", row)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser("find user by id", row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, name string, avatarURL *string) error {
	var (
		res sql.Result
		err error
	)
	if avatarURL != nil {
		res, err = r.db.ExecContext(ctx, `UPDATE users SET name = ?, avatar_url = ? WHERE id = ?`, name, *avatarURL, id)
	} else {
		res, err = r.db.ExecContext(ctx, `UPDATE users SET name = ? WHERE id = ?`, name, id)
	}
	if err != nil {
		return dbError("update profile", err, nil)
	}
	return expectAffected("update profile", res, domain.ErrUserNotFound)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return dbError("update password", err, nil)
	}
	return expectAffected("update password", res, domain.ErrUserNotFound)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, role, id)
	if err != nil {
		return dbError("update role", err, nil)
	}
	return expectAffected("update role", res, domain.ErrUserNotFound)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		if isReferenced(err) {
			return domain.ErrUserHasDependents
		}
		return dbError("delete user", err, nil)
	}
	return expectAffected("delete user", res, domain.ErrUserNotFound)
}

// List searches name and email. The count uses the same filter as the page.
func (r *UserRepository) List(ctx context.Context, req domain.PageRequest, limit int) ([]domain.PublicProfile, int64, error) {
	where := ""
	var args []any
	if req.HasQuery() {
		where = ` WHERE (LOWER(name) LIKE ? OR LOWER(email) LIKE ?)`
		p := req.LikePattern()
		args = append(args, p, p)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, dbError("count users", err, nil)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, role, avatar_url FROM users`+where+` ORDER BY id LIMIT ? OFFSET ?`,
		append(args, limit, req.Offset(limit))...)
	if err != nil {
		return nil, 0, dbError("list users", err, nil)
	}
	defer rows.Close()

	users := []domain.PublicProfile{}
	for rows.Next() {
		var (
			p      domain.PublicProfile
			avatar sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Role, &avatar); err != nil {
			return nil, 0, dbError("scan user", err, nil)
		}
		p.AvatarURL = avatar.String
		users = append(users, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dbError("list users", err, nil)
	}
	return users, total, nil
}

func scanUser(op string, row *sql.Row) (*domain.User, error) {
	var (
		u      domain.User
		avatar sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &avatar, &u.CreatedAt); err != nil {
		return nil, dbError(op, err, domain.ErrUserNotFound)
	}
	u.AvatarURL = avatar.String
	return &u, nil
}

