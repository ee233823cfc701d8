package api

import (
	"net/http"
	"strconv"

	"github.com/Nishantvidhuri/storebackend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

func (h *Handler) placeOrder(c *gin.Context) {
	ident := identityFrom(c)

	var req service.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), ident.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) getMyOrders(c *gin.Context) {
	ident := identityFrom(c)

	orders, err := h.orders.GetMyOrders(c.Request.Context(), ident.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) getAllOrders(c *gin.Context) {
	orders, err := h.orders.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) updateOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orders.UpdateOrder(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) createPayment(c *gin.Context) {
	var req service.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	intent, err := h.payments.CreateIntent(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating payment"})
		return
	}

	// the gateway's response is returned verbatim
	c.Data(http.StatusOK, "application/json", intent)
}

func (h *Handler) verifyPayment(c *gin.Context) {
	ident := identityFrom(c)

	var req service.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), ident.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error verifying payment"})
		return
	}

	order, err := h.payments.VerifyPayment(c.Request.Context(), user, &req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *Handler) exportOrders(c *gin.Context) {
	orders, err := h.orders.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
		return
	}

	headers := []string{
		"ID", "UserID", "TotalPrice", "PaymentMethod", "IsPaid", "PaidAt",
		"Status", "City", "State", "Pincode", "CreatedAt",
	}
	headerRow := sheet.AddRow()
	for _, head := range headers {
		headerRow.AddCell().SetValue(head)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.UserID)
		row.AddCell().SetValue(o.TotalPrice)
		row.AddCell().SetValue(o.PaymentMethod)
		row.AddCell().SetValue(o.IsPaid)
		if o.PaidAt.Valid {
			row.AddCell().SetValue(o.PaidAt.Time.Format("2006-01-02 15:04:05"))
		} else {
			row.AddCell().SetValue("")
		}
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetValue(o.Address.City)
		row.AddCell().SetValue(o.Address.State)
		row.AddCell().SetValue(o.Address.Pincode)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		return
	}
}
