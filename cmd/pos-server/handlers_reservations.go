package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sakchaid/krua-pos/internal/reservation"
)

func createReservationHandler(repo reservation.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reservation.CreateReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		if req.PartySize < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "party_size must be at least 1"})
			return
		}
		if req.StartsAt.IsZero() || req.StartsAt.Before(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "starts_at must be in the future"})
			return
		}
		res := &reservation.Reservation{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Phone:     req.Phone,
			TableCode: req.TableCode,
			PartySize: req.PartySize,
			StartsAt:  req.StartsAt,
			Status:    reservation.StatusBooked,
		}
		if err := repo.Create(c.Request.Context(), res); err != nil {
			log.Printf("[reservations] create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

func listReservationsHandler(repo reservation.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		from := time.Now()
		if v := c.Query("from"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
				return
			}
			from = t
		}
		out, err := repo.ListUpcoming(c.Request.Context(), from, intQuery(c, "limit"))
		if err != nil {
			log.Printf("[reservations] list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if out == nil {
			out = []reservation.Reservation{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func updateReservationStatusHandler(repo reservation.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || !reservation.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		if err := repo.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
			if errors.Is(err, reservation.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
				return
			}
			log.Printf("[reservations] status update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
