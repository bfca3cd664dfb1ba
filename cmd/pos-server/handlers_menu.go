package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sakchaid/krua-pos/internal/menu"
)

func intQuery(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(c.Query(name))
	return n
}

func menuID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item id"})
		return 0, false
	}
	return id, true
}

// publicMenuHandler serves GET /menu for the QR flow: available items only.
func publicMenuHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context(), menu.Query{Category: c.Query("category")})
		if err != nil {
			log.Printf("[menu] list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		out := make([]menu.Item, 0, len(items))
		for _, it := range items {
			if it.Available {
				out = append(out, it)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

func listMenuItemsHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := menu.Query{
			Q:        c.Query("q"),
			Category: c.Query("category"),
			Limit:    intQuery(c, "limit"),
			Offset:   intQuery(c, "offset"),
		}
		items, err := repo.List(c.Request.Context(), q)
		if err != nil {
			log.Printf("[menu] list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if items == nil {
			items = []menu.Item{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func getMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := menuID(c)
		if !ok {
			return
		}
		it, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, menu.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
				return
			}
			log.Printf("[menu] get failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

func validPrice(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

func createMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req menu.CreateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		if !validPrice(req.PriceTHB) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price_thb must be a non-negative decimal"})
			return
		}
		available := true
		if req.Available != nil {
			available = *req.Available
		}
		it := &menu.Item{
			Name:        req.Name,
			Description: req.Description,
			PriceTHB:    req.PriceTHB,
			Category:    req.Category,
			Available:   available,
		}
		if err := repo.Create(c.Request.Context(), it); err != nil {
			log.Printf("[menu] create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, it)
	}
}

func updateMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := menuID(c)
		if !ok {
			return
		}
		var req menu.UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		current, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, menu.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
				return
			}
			log.Printf("[menu] get failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		updatePrice := req.PriceTHB != ""
		if updatePrice && !validPrice(req.PriceTHB) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price_thb must be a non-negative decimal"})
			return
		}
		available := current.Available
		if req.Available != nil {
			available = *req.Available
		}
		it := &menu.Item{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			PriceTHB:    req.PriceTHB,
			Category:    req.Category,
			Available:   available,
		}
		if err := repo.Update(c.Request.Context(), it, updatePrice); err != nil {
			log.Printf("[menu] update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		updated, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			log.Printf("[menu] refetch failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteMenuItemHandler(repo menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := menuID(c)
		if !ok {
			return
		}
		deleted, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			log.Printf("[menu] delete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
