package store

import (
	"context"
	"database/sql"

	"github.com/Nishantvidhuri/storebackend/internal/models"
)

// CreateComplaint inserts a new ticket
func (s *Store) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	query := `
		INSERT INTO complaints (user_id, issue, model, address, phone_number, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, c, query,
		c.UserID, c.Issue, c.Model, c.Address, c.PhoneNumber, c.Status)
}

// GetComplaintsByUserID retrieves a user's tickets
func (s *Store) GetComplaintsByUserID(ctx context.Context, userID int64) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.db.SelectContext(ctx, &complaints,
		"SELECT * FROM complaints WHERE user_id = $1 ORDER BY created_at DESC", userID)
	return complaints, err
}

// GetAllComplaints retrieves every ticket
func (s *Store) GetAllComplaints(ctx context.Context) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.db.SelectContext(ctx, &complaints,
		"SELECT * FROM complaints ORDER BY created_at DESC")
	return complaints, err
}

// UpdateComplaintStatus sets a ticket's status and returns the updated row
func (s *Store) UpdateComplaintStatus(ctx context.Context, id int64, status string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.db.GetContext(ctx, &c, `
		UPDATE complaints SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING *`, status, id)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
