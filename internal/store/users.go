package store

import (
	"context"
	"database/sql"

	"github.com/Nishantvidhuri/storebackend/internal/models"
)

// CreateUser inserts a new account
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (username, email, phone, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, u, query,
		u.Username, u.Email, u.Phone, u.PasswordHash, u.IsAdmin)
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE id = $1", id); err != nil {
		return nil, err
	}
	u.HydrateAddress()
	return &u, nil
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE email = $1", email); err != nil {
		return nil, err
	}
	u.HydrateAddress()
	return &u, nil
}

// FindUserByEmailOrUsername returns a matching user, or nil when none exists
func (s *Store) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		"SELECT * FROM users WHERE email = $1 OR username = $2 LIMIT 1", email, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.HydrateAddress()
	return &u, nil
}

// FindOtherUserByEmailOrUsername is FindUserByEmailOrUsername excluding one account
func (s *Store) FindOtherUserByEmailOrUsername(ctx context.Context, email, username string, excludeID int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		"SELECT * FROM users WHERE (email = $1 OR username = $2) AND id <> $3 LIMIT 1",
		email, username, excludeID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.HydrateAddress()
	return &u, nil
}

// GetUsers retrieves all accounts
func (s *Store) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY id"); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].HydrateAddress()
	}
	return users, nil
}

// UpdateUser overwrites the mutable columns of an account
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET username = $1, email = $2, phone = $3, password_hash = $4, is_admin = $5,
		    ship_area = $6, ship_landmark = $7, ship_city = $8, ship_state = $9,
		    ship_pincode = $10, ship_instructions = $11, updated_at = NOW()
		WHERE id = $12`,
		u.Username, u.Email, u.Phone, u.PasswordHash, u.IsAdmin,
		u.Address.Area, u.Address.Landmark, u.Address.City, u.Address.State,
		u.Address.Pincode, u.Address.Instructions, u.ID)
	return err
}

// DeleteUser removes an account
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
