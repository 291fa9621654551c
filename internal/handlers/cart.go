package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/events"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/logging"
	authmw "github.com/Evaristo-Paulo/api-ecommerce/internal/middleware/auth"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/models"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/session"
)

type CartHandler struct {
	DB       *gorm.DB
	Sessions *session.Manager
	Producer *events.Producer
}

type CartEntry struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_add")

	userID, err := authmw.UserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "Unauthorized. User not logged in")
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "bad_product_id")
		return message(c, http.StatusBadRequest, "Failed to add item to the cart")
	}

	user, err := h.Sessions.LoadUser(ctx, userID)
	if err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "user_lookup", "error", err)
		return message(c, http.StatusBadRequest, "Failed to add item to the cart")
	}

	var product models.Product
	if err := h.DB.WithContext(ctx).First(&product, productID).Error; err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "product_lookup", "productID", productID)
		return message(c, http.StatusBadRequest, "Failed to add item to the cart")
	}

	// Each add inserts its own row, duplicates included.
	item := models.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
	}
	if err := h.DB.WithContext(ctx).Create(&item).Error; err != nil {
		l.Error("add_to_cart_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(user.ID), map[string]any{
		"type":      "cart_item_added",
		"userID":    user.ID,
		"productID": product.ID,
	})

	l.Info("cart_item_added", "userID", user.ID, "productID", product.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"user":    user.Username,
		"product": product.Name,
	})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_remove")

	userID, err := authmw.UserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "Unauthorized. User not logged in")
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		l.Warn("remove_from_cart_failed", "status", 400, "reason", "bad_product_id")
		return message(c, http.StatusBadRequest, "Failed to remove item from the cart")
	}

	// Only the first matching row goes away, even when duplicates exist.
	var item models.CartItem
	if err := h.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("remove_from_cart_failed", "status", 500, "error", err)
			return message(c, http.StatusInternalServerError, "internal error")
		}
		l.Warn("remove_from_cart_failed", "status", 400, "reason", "not_in_cart", "productID", productID)
		return message(c, http.StatusBadRequest, "Failed to remove item from the cart")
	}

	if err := h.DB.WithContext(ctx).Delete(&item).Error; err != nil {
		l.Error("remove_from_cart_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})

	l.Info("cart_item_removed", "userID", userID, "productID", productID)
	return message(c, http.StatusOK, "Item removed from the cart successfully")
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_view")

	userID, err := authmw.UserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "Unauthorized. User not logged in")
	}

	var items []models.CartItem
	if err := h.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		l.Error("get_cart_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "internal error")
	}

	// An empty cart answers 401, indistinguishable from an unauthenticated
	// call. Kept for compatibility with existing clients.
	if len(items) == 0 {
		l.Warn("get_cart_empty", "status", 401, "userID", userID)
		return message(c, http.StatusUnauthorized, "Unauthorized. User not logged in")
	}

	entries := make([]CartEntry, 0, len(items))
	for _, item := range items {
		var product models.Product
		if err := h.DB.WithContext(ctx).First(&product, item.ProductID).Error; err != nil {
			l.Error("get_cart_failed", "status", 500, "cartItemID", item.ID, "error", err)
			return message(c, http.StatusInternalServerError, "internal error")
		}
		entries = append(entries, CartEntry{
			ID:           item.ID,
			UserID:       item.UserID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"Cart": entries})
}

func (h *CartHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_checkout")

	userID, err := authmw.UserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "Unauthorized. User not logged in")
	}

	var items []models.CartItem
	if err := h.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		l.Error("checkout_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "internal error")
	}

	// Same conflation as GetCart: an empty cart answers 401.
	if len(items) == 0 {
		l.Warn("checkout_empty", "status", 401, "userID", userID)
		return message(c, http.StatusUnauthorized, "Unauthorized. User not logged in")
	}

	if err := h.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		l.Error("checkout_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicCartEvents, fmt.Sprint(userID), map[string]any{
		"type":    "cart_checked_out",
		"userID":  userID,
		"cleared": len(items),
	})

	l.Info("cart_checked_out", "userID", userID, "cleared", len(items))
	return message(c, http.StatusOK, "Checkout successful. Cart has been cleared")
}
