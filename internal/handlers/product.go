package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/events"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/logging"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/models"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/service/search"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
	ES       *elasticsearch.Client
	Index    string
}

// ProductListItem is the catalog list view; description is left out.
type ProductListItem struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *ProductHandler) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_add")

	var req struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("add_product_failed", "status", 400, "error", err)
		return message(c, http.StatusBadRequest, "Invalid product data")
	}

	if req.Name == nil || req.Price == nil {
		l.Warn("add_product_failed", "status", 400, "reason", "missing_fields")
		return message(c, http.StatusBadRequest, "Invalid product data")
	}

	prod := models.Product{
		Name:  *req.Name,
		Price: *req.Price,
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}

	if err := h.DB.WithContext(ctx).Create(&prod).Error; err != nil {
		l.Error("add_product_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "internal error")
	}

	h.syncIndex(c, prod)
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("product_created", "productID", prod.ID)
	return message(c, http.StatusOK, "Product stored successfully")
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return message(c, http.StatusNotFound, "Product not found")
	}

	var prod models.Product
	if err := h.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		l.Warn("get_product_failed", "status", 404, "productID", id)
		return message(c, http.StatusNotFound, "Product not found")
	}

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_list")

	var items []ProductListItem
	if err := h.DB.WithContext(ctx).Model(&models.Product{}).Find(&items).Error; err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "internal error")
	}

	if items == nil {
		items = []ProductListItem{}
	}
	return c.JSON(http.StatusOK, echo.Map{"Products": items})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return message(c, http.StatusNotFound, "Product not found")
	}

	var prod models.Product
	if err := h.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		l.Warn("update_product_failed", "status", 404, "productID", id)
		return message(c, http.StatusNotFound, "Product not found")
	}

	// Partial update: absent fields keep their stored values.
	var req struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "error", err)
		return message(c, http.StatusBadRequest, "Invalid product data")
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}

	if err := h.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		l.Error("update_product_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "internal error")
	}

	h.syncIndex(c, prod)
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("product_updated", "productID", prod.ID)
	return message(c, http.StatusOK, "Product updated successfully")
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return message(c, http.StatusNotFound, "Product not found")
	}

	// Referencing cart items are left in place: no cascade.
	res := h.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		l.Error("delete_product_failed", "status", 500, "error", res.Error)
		return message(c, http.StatusInternalServerError, "internal error")
	}
	if res.RowsAffected == 0 {
		l.Warn("delete_product_failed", "status", 404, "productID", id)
		return message(c, http.StatusNotFound, "Product not found")
	}

	h.dropFromIndex(c, uint(id))
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("product_deleted", "productID", id)
	return message(c, http.StatusOK, "Product deleted successfully")
}

func (h *ProductHandler) syncIndex(c echo.Context, prod models.Product) {
	if h.ES == nil {
		return
	}
	if err := search.IndexProduct(c.Request().Context(), h.ES, h.Index, prod); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *ProductHandler) dropFromIndex(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	if err := search.DeleteProduct(c.Request().Context(), h.ES, h.Index, id); err != nil {
		c.Logger().Errorf("ES delete error: %v", err)
	}
}
