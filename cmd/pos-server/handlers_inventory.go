package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/sakchaid/krua-pos/internal/inventory"
)

func ingredientID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return 0, false
	}
	return id, true
}

func validQuantity(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

func listIngredientsHandler(repo inventory.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.List(c.Request.Context())
		if err != nil {
			log.Printf("[inventory] list failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if out == nil {
			out = []inventory.Ingredient{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func createIngredientHandler(repo inventory.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req inventory.CreateIngredientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		if req.Name == "" || req.Unit == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and unit are required"})
			return
		}
		if req.Quantity == "" {
			req.Quantity = "0"
		}
		if req.LowStockThreshold == "" {
			req.LowStockThreshold = "0"
		}
		if !validQuantity(req.Quantity) || !validQuantity(req.LowStockThreshold) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantities must be non-negative decimals"})
			return
		}
		ing := &inventory.Ingredient{
			Name:              req.Name,
			Unit:              req.Unit,
			Quantity:          req.Quantity,
			LowStockThreshold: req.LowStockThreshold,
		}
		if err := repo.Create(c.Request.Context(), ing); err != nil {
			log.Printf("[inventory] create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, ing)
	}
}

func adjustIngredientHandler(repo inventory.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ingredientID(c)
		if !ok {
			return
		}
		var req inventory.AdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		if _, err := decimal.NewFromString(req.Delta); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "delta must be a decimal"})
			return
		}
		ing, err := repo.Adjust(c.Request.Context(), id, req.Delta)
		if err != nil {
			switch {
			case errors.Is(err, inventory.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
			case errors.Is(err, inventory.ErrInsufficient):
				c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient stock"})
			default:
				log.Printf("[inventory] adjust failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, ing)
	}
}

func deleteIngredientHandler(repo inventory.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ingredientID(c)
		if !ok {
			return
		}
		deleted, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			log.Printf("[inventory] delete failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
