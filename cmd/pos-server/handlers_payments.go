package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sakchaid/krua-pos/internal/order"
	"github.com/sakchaid/krua-pos/internal/payment"
)

// createPaymentHandler records a payment against an order. When the
// sum of payments reaches the order total the order is marked
// COMPLETED.
func createPaymentHandler(payments payment.Repository, orders order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		amount, err := decimal.NewFromString(req.AmountTHB)
		if err != nil || !amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount_thb must be a positive decimal"})
			return
		}
		if !payment.ValidMethod(req.Method) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown payment method"})
			return
		}

		o, err := orders.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, order.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			log.Printf("[payments] order lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if o.Status == order.StatusCancelled || o.Status == order.StatusCompleted {
			c.JSON(http.StatusConflict, gin.H{"error": "order is " + o.Status})
			return
		}

		p := &payment.Payment{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			AmountTHB:  amount.Round(2).StringFixed(2),
			Method:     req.Method,
			ReceivedBy: c.GetString("uid"),
			CreatedAt:  time.Now().UTC(),
		}
		if err := payments.Create(c.Request.Context(), p); err != nil {
			log.Printf("[payments] create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		paid, err := payments.TotalPaid(c.Request.Context(), o.ID)
		if err != nil {
			log.Printf("[payments] total lookup failed for %s: %v", o.ID, err)
			c.JSON(http.StatusCreated, p)
			return
		}
		total, err := decimal.NewFromString(o.Total)
		if err == nil && paid.GreaterThanOrEqual(total) {
			if err := orders.UpdateStatus(c.Request.Context(), o.ID, order.StatusCompleted); err != nil {
				log.Printf("[payments] completing order %s failed: %v", o.ID, err)
			}
		}
		c.JSON(http.StatusCreated, p)
	}
}

func listPaymentsHandler(payments payment.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := payments.ListByOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			log.Printf("[payments] list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if out == nil {
			out = []payment.Payment{}
		}
		c.JSON(http.StatusOK, out)
	}
}
