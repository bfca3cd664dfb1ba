package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakchaid/krua-pos/internal/config"
	"github.com/sakchaid/krua-pos/internal/httpx"
	"github.com/sakchaid/krua-pos/internal/idempotency"
	"github.com/sakchaid/krua-pos/internal/inventory"
	"github.com/sakchaid/krua-pos/internal/menu"
	"github.com/sakchaid/krua-pos/internal/notify"
	"github.com/sakchaid/krua-pos/internal/order"
	"github.com/sakchaid/krua-pos/internal/payment"
	"github.com/sakchaid/krua-pos/internal/reservation"
	"github.com/sakchaid/krua-pos/internal/user"
)

type app struct {
	cfg          config.Config
	orders       order.Repository
	menu         menu.Repository
	users        user.Repository
	payments     payment.Repository
	inventory    inventory.Repository
	reservations reservation.Repository
	gate         *idempotency.Gate
	kitchen      *notify.Publisher
}

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// public: QR table flow
	r.GET("/menu", publicMenuHandler(a.menu))
	r.POST("/orders/guest", createGuestOrderHandler(a.orders, a.menu, a.gate, a.kitchen))
	r.POST("/auth/login", loginHandler(a.users, a.cfg.JWTSecret))

	secret := a.cfg.JWTSecret

	// waiter and up
	waiter := r.Group("/", httpx.RequireRole(secret, user.RoleWaiter))
	{
		waiter.POST("/orders", createStaffOrderHandler(a.orders, a.menu, a.kitchen))
		waiter.GET("/orders", listOrdersHandler(a.orders))
		waiter.GET("/orders/:id", getOrderHandler(a.orders))
		waiter.PATCH("/orders/:id/status", updateOrderStatusHandler(a.orders))
		waiter.POST("/orders/:id/payments", createPaymentHandler(a.payments, a.orders))
		waiter.GET("/orders/:id/payments", listPaymentsHandler(a.payments))
		waiter.POST("/reservations", createReservationHandler(a.reservations))
		waiter.GET("/reservations", listReservationsHandler(a.reservations))
		waiter.PATCH("/reservations/:id/status", updateReservationStatusHandler(a.reservations))
	}

	// manager and up
	manager := r.Group("/", httpx.RequireRole(secret, user.RoleManager))
	{
		manager.GET("/admin/menu", listMenuItemsHandler(a.menu))
		manager.GET("/admin/menu/:id", getMenuItemHandler(a.menu))
		manager.POST("/admin/menu", createMenuItemHandler(a.menu))
		manager.PUT("/admin/menu/:id", updateMenuItemHandler(a.menu))
		manager.DELETE("/admin/menu/:id", deleteMenuItemHandler(a.menu))
		manager.GET("/inventory", listIngredientsHandler(a.inventory))
		manager.POST("/inventory", createIngredientHandler(a.inventory))
		manager.POST("/inventory/:id/adjust", adjustIngredientHandler(a.inventory))
		manager.DELETE("/inventory/:id", deleteIngredientHandler(a.inventory))
	}

	// admin only
	admin := r.Group("/", httpx.RequireRole(secret, user.RoleAdmin))
	{
		admin.POST("/auth/register", registerHandler(a.users))
	}

	return r
}
