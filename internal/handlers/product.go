package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/logging"
	"github.com/ndenisov/gostore/internal/models"
	"github.com/ndenisov/gostore/internal/mykafka"
	"github.com/ndenisov/gostore/internal/repository"
	"github.com/ndenisov/gostore/internal/util"
)

type ProductHandler struct {
	Repo     *repository.ProductRepository
	Producer *mykafka.Producer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	product, err := h.Repo.Get(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "productID", id)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	products, err := h.Repo.GetAll(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	total := len(products)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": products[offset:end],
		"meta": map[string]interface{}{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	product, httpErr := h.bindProduct(c)
	if httpErr != nil {
		l.Warn("product_create_error", "status", httpErr.Code, "error", httpErr.Message)
		return httpErr
	}

	created, err := h.Repo.Create(ctx, product)
	if err != nil {
		l.Error("product_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_created",
		"productID": created.ID,
		"name":      created.Name,
	})

	l.Info("product created", "productID", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	product, httpErr := h.bindProduct(c)
	if httpErr != nil {
		l.Warn("product_update_error", "status", httpErr.Code, "error", httpErr.Message)
		return httpErr
	}
	product.ID = uint(id)

	updated, err := h.Repo.Update(ctx, product)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_update_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_updated",
		"productID": updated.ID,
	})

	return c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	ok, err := h.Repo.Delete(ctx, uint(id))
	if err != nil {
		l.Error("product_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !ok {
		l.Warn("product_delete_failed", "status", 404, "productID", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{"deleted": id})
}

// bindProduct reads the multipart form, stores an uploaded image under the
// repository's image dir and fills the model. The image part is optional.
func (h *ProductHandler) bindProduct(c echo.Context) (*models.Product, *echo.HTTPError) {
	name := c.FormValue("name")
	description := c.FormValue("description")
	if name == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "name required")
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	count := parseIntDefault(c.FormValue("count"), 0)
	categoryID := parseIntDefault(c.FormValue("category_id"), 0)

	product := &models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Count:       uint(count),
		CategoryID:  uint(categoryID),
	}

	file, err := c.FormFile("image")
	if err != nil {
		return product, nil
	}

	imageURL, saveErr := h.saveImage(file.Filename, func() (io.ReadCloser, error) { return file.Open() })
	if saveErr != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "cannot store image")
	}
	product.ImageURL = imageURL
	return product, nil
}

func (h *ProductHandler) saveImage(filename string, open func() (io.ReadCloser, error)) (string, error) {
	src, err := open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.Repo.ImageDir, 0o755); err != nil {
		return "", err
	}

	stored := uuid.NewString() + filepath.Ext(filename)
	dst, err := os.Create(filepath.Join(h.Repo.ImageDir, stored))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/" + stored, nil
}

func (h *ProductHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
