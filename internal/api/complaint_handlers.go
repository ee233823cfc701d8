package api

import (
	"net/http"
	"strconv"

	"github.com/Nishantvidhuri/storebackend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createComplaint(c *gin.Context) {
	ident := identityFrom(c)

	var req service.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	complaint, err := h.complaints.Create(c.Request.Context(), ident.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

func (h *Handler) getMyComplaints(c *gin.Context) {
	ident := identityFrom(c)

	complaints, err := h.complaints.ListMine(c.Request.Context(), ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *Handler) listAllComplaints(c *gin.Context) {
	complaints, err := h.complaints.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *Handler) updateComplaint(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	complaint, err := h.complaints.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}
