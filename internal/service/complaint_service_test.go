package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Nishantvidhuri/storebackend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComplaintStore struct {
	complaints map[int64]*models.Complaint
	nextID     int64
}

func newFakeComplaintStore() *fakeComplaintStore {
	return &fakeComplaintStore{complaints: make(map[int64]*models.Complaint), nextID: 1}
}

func (f *fakeComplaintStore) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	c.ID = f.nextID
	f.nextID++
	stored := *c
	f.complaints[c.ID] = &stored
	return nil
}

func (f *fakeComplaintStore) GetComplaintsByUserID(ctx context.Context, userID int64) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range f.complaints {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComplaintStore) GetAllComplaints(ctx context.Context) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range f.complaints {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeComplaintStore) UpdateComplaintStatus(ctx context.Context, id int64, status string) (*models.Complaint, error) {
	c, ok := f.complaints[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	c.Status = status
	copied := *c
	return &copied, nil
}

func TestCreateComplaintStartsPending(t *testing.T) {
	svc := NewComplaintService(newFakeComplaintStore())

	complaint, err := svc.Create(context.Background(), 7, &CreateComplaintRequest{
		Issue:       "Purifier leaking",
		Model:       "AquaPure 9",
		PhoneNumber: "+919999999999",
	})
	require.NoError(t, err)
	assert.NotZero(t, complaint.ID)
	assert.Equal(t, models.ComplaintStatusPending, complaint.Status)
}

func TestUpdateComplaintStatus(t *testing.T) {
	store := newFakeComplaintStore()
	svc := NewComplaintService(store)

	complaint, err := svc.Create(context.Background(), 7, &CreateComplaintRequest{Issue: "Purifier leaking"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), complaint.ID, models.ComplaintStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), complaint.ID, "escalated-to-mars")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), 404, models.ComplaintStatusResolved)
	assert.ErrorIs(t, err, ErrComplaintNotFound)
}
