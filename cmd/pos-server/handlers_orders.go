package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sakchaid/krua-pos/internal/idempotency"
	"github.com/sakchaid/krua-pos/internal/notify"
	"github.com/sakchaid/krua-pos/internal/order"
)

// createGuestOrderHandler handles POST /orders/guest: the QR table
// flow. Validation order is fixed: shape, then total-sum, then menu
// prices; only a fully valid submission reaches the idempotency gate
// and the side-effecting create.
func createGuestOrderHandler(repo order.Repository, prices order.PriceSource, gate *idempotency.Gate, kitchen *notify.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.Submission
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		if msg := req.Validate(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		if !order.ValidateTotal(req.Items, req.Total) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order total does not match item prices"})
			return
		}
		if v := order.ValidateAgainstMenu(c.Request.Context(), prices, req.Items); !v.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": v.Err})
			return
		}

		key := c.GetHeader("Idempotency-Key")
		status, body := gate.Execute(c.Request.Context(), key, req.Fingerprint(), func() (int, []byte) {
			return createOrder(c.Request.Context(), repo, kitchen, &req, "guest")
		})
		c.Data(status, "application/json", body)
	}
}

// createStaffOrderHandler handles POST /orders: same validation
// pipeline, no idempotency gating, creator taken from the token.
func createStaffOrderHandler(repo order.Repository, prices order.PriceSource, kitchen *notify.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.Submission
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		if msg := req.Validate(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		if !order.ValidateTotal(req.Items, req.Total) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order total does not match item prices"})
			return
		}
		if v := order.ValidateAgainstMenu(c.Request.Context(), prices, req.Items); !v.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": v.Err})
			return
		}

		status, body := createOrder(c.Request.Context(), repo, kitchen, &req, c.GetString("uid"))
		c.Data(status, "application/json", body)
	}
}

// createOrder persists the validated submission and fires the kitchen
// notification. Notification failures are logged, never surfaced: a
// broker outage must not fail the order.
func createOrder(ctx context.Context, repo order.Repository, kitchen *notify.Publisher, req *order.Submission, createdBy string) (int, []byte) {
	sum := decimal.Zero
	for _, it := range req.Items {
		sum = sum.Add(it.PriceTHB.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	now := time.Now().UTC()
	o := &order.Order{
		ID:        uuid.NewString(),
		Items:     req.Items,
		Subtotal:  sum.Round(2).StringFixed(2),
		Total:     req.Total.Round(2).StringFixed(2),
		Status:    order.StatusPending,
		TableCode: req.TableCode,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, o); err != nil {
		log.Printf("[orders] create failed: %v", err)
		return http.StatusInternalServerError, []byte(`{"error":"internal error"}`)
	}
	if err := kitchen.OrderCreated(ctx, o); err != nil {
		log.Printf("[orders] kitchen notify failed for %s: %v", o.ID, err)
	}
	body, err := json.Marshal(o)
	if err != nil {
		log.Printf("[orders] marshal failed for %s: %v", o.ID, err)
		return http.StatusInternalServerError, []byte(`{"error":"internal error"}`)
	}
	return http.StatusCreated, body
}

func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, order.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			log.Printf("[orders] get failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := order.ListQuery{Status: c.Query("status")}
		if q.Status != "" && !order.ValidStatus(q.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		q.Limit = intQuery(c, "limit")
		q.Offset = intQuery(c, "offset")
		out, err := repo.List(c.Request.Context(), q)
		if err != nil {
			log.Printf("[orders] list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if out == nil {
			out = []order.Order{}
		}
		c.JSON(http.StatusOK, out)
	}
}

// updateOrderStatusHandler handles PATCH /orders/:id/status. Items and
// totals stay immutable; only forward transitions are allowed.
func updateOrderStatusHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !order.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		o, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, order.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			log.Printf("[orders] get failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !order.CanTransition(o.Status, req.Status) {
			c.JSON(http.StatusConflict, gin.H{"error": "illegal status transition " + o.Status + " -> " + req.Status})
			return
		}
		if err := repo.UpdateStatus(c.Request.Context(), o.ID, req.Status); err != nil {
			log.Printf("[orders] status update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		o.Status = req.Status
		c.JSON(http.StatusOK, o)
	}
}
