package repository

import (
	"context"
	"database/sql"
	"errors"

	"swapnest/internal/entity"
)

const userColumns = `id, username, email, password_hash, profile_picture_url, contact_details, role, is_active, balance, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var (
		user    entity.User
		contact sql.NullString
	)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.ProfilePictureURL, &contact, &user.Role, &user.IsActive,
		&user.Balance, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	user.ContactDetails = contact.String
	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (username, email, password_hash, profile_picture_url, contact_details, role, is_active, balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash,
		user.ProfilePictureURL, user.ContactDetails, user.Role, user.IsActive, user.Balance)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = int(id)
	return user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `UPDATE users SET username = ?, email = ?, password_hash = ?, profile_picture_url = ?, contact_details = ?, role = ?, is_active = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash,
		user.ProfilePictureURL, user.ContactDetails, user.Role, user.IsActive, user.ID)
	if err != nil {
		return nil, err
	}
	return r.GetUserByID(ctx, user.ID)
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
