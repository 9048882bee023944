package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"accounthub/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(page, limit int, search string) ([]*models.User, int, error)
	Update(user *models.User) error
	SoftDelete(id string, tombstoneEmail string, at time.Time) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, first_name, last_name, email, is_active, is_deleted, deleted_at, created_at, updated_at
`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var deletedAt sql.NullTime
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email,
		&u.IsActive, &u.IsDeleted, &deletedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		u.DeletedAt = &t
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (id, first_name, last_name, email, is_active)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at
	`
	return r.DB.QueryRow(q,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(q, email))
}

// List returns one page of users, newest first, with a case-insensitive
// search across name and email, plus the total match count.
func (r *userRepository) List(page, limit int, search string) ([]*models.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	pattern := "%" + search + "%"

	var total int
	const countQ = `
		SELECT count(*) FROM users
		WHERE ($1 = '%%' OR first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1)
	`
	if err := r.DB.QueryRow(countQ, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 = '%%' OR first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.Query(q, pattern, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		var deletedAt sql.NullTime
		if err := rows.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.Email,
			&u.IsActive, &u.IsDeleted, &deletedAt,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		if deletedAt.Valid {
			t := deletedAt.Time
			u.DeletedAt = &t
		}
		res = append(res, u)
	}
	return res, total, rows.Err()
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET first_name=$1, last_name=$2, updated_at=now()
		WHERE id=$3
		RETURNING updated_at
	`
	return r.DB.QueryRow(q, user.FirstName, user.LastName, user.ID).Scan(&user.UpdatedAt)
}

// SoftDelete scrubs the profile rather than removing the row: the name
// becomes a tombstone and the email is re-pointed so the unique index
// frees the original address.
func (r *userRepository) SoftDelete(id string, tombstoneEmail string, at time.Time) (*models.User, error) {
	const q = `
		UPDATE users
		SET first_name='Deleted', last_name='User', email=$1,
		    is_deleted=TRUE, is_active=FALSE, deleted_at=$2, updated_at=now()
		WHERE id=$3
		RETURNING ` + userColumns + `
	`
	u := &models.User{}
	var deletedAt sql.NullTime
	err := r.DB.QueryRow(q, tombstoneEmail, at, id).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email,
		&u.IsActive, &u.IsDeleted, &deletedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("soft delete user %s: %w", id, err)
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		u.DeletedAt = &t
	}
	return u, nil
}
