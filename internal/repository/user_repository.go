package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/stanstork/tutoring-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string, roles []models.UserRole) (models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID string) (models.User, error)
	UpdateUserRoles(ctx context.Context, userID string, roles []models.UserRole) (models.User, error)
	ListUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, password_hash, is_active, roles, created_at, updated_at`

func (u *userRepository) CreateUser(ctx context.Context, email, password, firstName, lastName string, roles []models.UserRole) (models.User, error) {
	if len(roles) == 0 {
		roles = []models.UserRole{models.RoleStudent}
	}
	normalized := models.EnsureDefaultRole(models.NormalizeRoles(roles))
	if !models.IsValidRoleList(normalized) {
		return models.User{}, errors.New("invalid roles")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	const query = `
		INSERT INTO tutoring.users (email, first_name, last_name, password_hash, is_active, roles)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		RETURNING ` + userColumns

	row := u.db.QueryRowContext(ctx, query,
		normalizeEmail(email),
		strings.TrimSpace(firstName),
		strings.TrimSpace(lastName),
		string(hash),
		pq.Array(toStringSlice(normalized)),
	)
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return user, nil
}

func (u *userRepository) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	user, err := u.GetUserByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if !user.IsActive {
		return models.User{}, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (u *userRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM tutoring.users
		WHERE lower(email) = $1 AND deleted_at IS NULL`
	return scanUser(u.db.QueryRowContext(ctx, query, normalizeEmail(email)))
}

func (u *userRepository) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM tutoring.users
		WHERE id = $1 AND deleted_at IS NULL`
	return scanUser(u.db.QueryRowContext(ctx, query, userID))
}

func (u *userRepository) UpdateUserRoles(ctx context.Context, userID string, roles []models.UserRole) (models.User, error) {
	normalized := models.EnsureDefaultRole(models.NormalizeRoles(roles))
	if !models.IsValidRoleList(normalized) {
		return models.User{}, errors.New("invalid roles")
	}

	const query = `
		UPDATE tutoring.users
		SET roles = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + userColumns
	return scanUser(u.db.QueryRowContext(ctx, query, userID, pq.Array(toStringSlice(normalized))))
}

func (u *userRepository) ListUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM tutoring.users
		WHERE $1 = ANY(roles) AND is_active AND deleted_at IS NULL
		ORDER BY first_name, last_name, email`

	rows, err := u.db.QueryContext(ctx, query, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func scanUser(row scanner) (models.User, error) {
	var (
		user  models.User
		roles pq.StringArray
	)
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsActive,
		&roles,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return models.User{}, err
	}
	user.Roles = models.EnsureDefaultRole(models.NormalizeRoles(toUserRoleSlice(roles)))
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toStringSlice(roles []models.UserRole) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}

func toUserRoleSlice(roles []string) []models.UserRole {
	out := make([]models.UserRole, 0, len(roles))
	for _, role := range roles {
		out = append(out, models.UserRole(role))
	}
	return out
}
