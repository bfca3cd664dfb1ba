package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sakchaid/krua-pos/internal/auth"
	"github.com/sakchaid/krua-pos/internal/user"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func loginHandler(repo user.Repository, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}
		u, err := repo.GetByUsername(c.Request.Context(), req.Username)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			log.Printf("[auth] lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !user.CheckPassword(u.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		token, err := auth.IssueToken(secret, u.ID, u.Role)
		if err != nil {
			log.Printf("[auth] token issue failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "role": u.Role})
	}
}

func registerHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}
		if !user.ValidRole(req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
			return
		}
		hash, err := user.HashPassword(req.Password)
		if err != nil {
			log.Printf("[auth] hash failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		u := &user.User{
			ID:           uuid.NewString(),
			Username:     req.Username,
			PasswordHash: hash,
			Role:         req.Role,
		}
		if err := repo.Create(c.Request.Context(), u); err != nil {
			if errors.Is(err, user.ErrAlreadyExist) {
				c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
				return
			}
			log.Printf("[auth] create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}
