package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nishantvidhuri/storebackend/internal/models"
	"github.com/Nishantvidhuri/storebackend/internal/util"

	"go.uber.org/zap"
)

// ComplaintStore is the persistence surface the ticket flow needs
type ComplaintStore interface {
	CreateComplaint(ctx context.Context, c *models.Complaint) error
	GetComplaintsByUserID(ctx context.Context, userID int64) ([]models.Complaint, error)
	GetAllComplaints(ctx context.Context) ([]models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id int64, status string) (*models.Complaint, error)
}

// ComplaintService manages customer service tickets
type ComplaintService struct {
	store  ComplaintStore
	logger *zap.Logger
}

// NewComplaintService creates a new complaint service
func NewComplaintService(store ComplaintStore) *ComplaintService {
	return &ComplaintService{store: store, logger: util.GetLogger()}
}

// CreateComplaintRequest is the ticket creation body
type CreateComplaintRequest struct {
	Issue       string `json:"issue" binding:"required"`
	Model       string `json:"model"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// Create books a ticket for the caller
func (s *ComplaintService) Create(ctx context.Context, userID int64, req *CreateComplaintRequest) (*models.Complaint, error) {
	complaint := &models.Complaint{
		UserID:      userID,
		Issue:       req.Issue,
		Model:       req.Model,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Status:      models.ComplaintStatusPending,
	}
	if err := s.store.CreateComplaint(ctx, complaint); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	s.logger.Info("Complaint booked",
		zap.Int64("complaint_id", complaint.ID),
		zap.Int64("user_id", userID))
	return complaint, nil
}

// ListMine retrieves the caller's tickets
func (s *ComplaintService) ListMine(ctx context.Context, userID int64) ([]models.Complaint, error) {
	return s.store.GetComplaintsByUserID(ctx, userID)
}

// ListAll retrieves every ticket
func (s *ComplaintService) ListAll(ctx context.Context) ([]models.Complaint, error) {
	return s.store.GetAllComplaints(ctx)
}

// UpdateStatus sets a ticket's status
func (s *ComplaintService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Complaint, error) {
	if status != models.ComplaintStatusPending && status != models.ComplaintStatusResolved {
		return nil, ErrInvalidStatus
	}

	complaint, err := s.store.UpdateComplaintStatus(ctx, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}
	return complaint, nil
}
