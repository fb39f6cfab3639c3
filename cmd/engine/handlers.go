package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
	"github.com/Victor-armando18/vinyl-store/internal/domain/cart"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure/catalog"
	"github.com/Victor-armando18/vinyl-store/internal/interfaces"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type valuesRequest struct {
	Values form.Values `json:"values"`
}

type patchRequest struct {
	Values form.Values      `json:"values"`
	Patch  []map[string]any `json:"patch"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func handleListForms(svc interfaces.FormFacade) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, svc.Forms())
	}
}

func handleValidate(svc interfaces.FormFacade, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req valuesRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid payload")
		}
		res, err := svc.Validate(c.Request().Context(), c.Param("form"), req.Values)
		if err != nil {
			return fail(c, logger, err)
		}
		return c.JSON(http.StatusOK, res)
	}
}

func handleEvent(svc interfaces.FormFacade, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var ev interfaces.FormEvent
		if err := c.Bind(&ev); err != nil {
			return badRequest(c, "invalid event")
		}
		res, err := svc.Apply(c.Request().Context(), c.Param("form"), ev)
		if err != nil {
			return fail(c, logger, err)
		}
		return c.JSON(http.StatusOK, res)
	}
}

func handlePatch(svc interfaces.FormFacade, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req patchRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid patch request")
		}
		patch, err := json.Marshal(req.Patch)
		if err != nil {
			return badRequest(c, "invalid patch request")
		}
		res, err := svc.Patch(c.Request().Context(), c.Param("form"), req.Values, patch)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownForm) {
				return fail(c, logger, err)
			}
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, res)
	}
}

func handleSubmit(svc interfaces.FormFacade, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req valuesRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid payload")
		}
		res, err := svc.Submit(c.Request().Context(), c.Param("form"), req.Values)
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusUnprocessableEntity, res)
		}
		if err != nil {
			return fail(c, logger, err)
		}
		return c.JSON(http.StatusCreated, res)
	}
}

func handleListProducts(products *catalog.MemoryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, products.Products())
	}
}

func handleLowStock(products *catalog.MemoryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, products.LowStock())
	}
}

func handleCreateCart(svc interfaces.CartFacade, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := svc.Create(c.Request().Context())
		if err != nil {
			return fail(c, logger, err)
		}
		return c.JSON(http.StatusCreated, v)
	}
}

func handleGetCart(svc interfaces.CartFacade, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := svc.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return fail(c, logger, err)
		}
		return c.JSON(http.StatusOK, v)
	}
}

func handleAddItem(svc interfaces.CartFacade, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var item cart.Item
		if err := json.NewDecoder(c.Request().Body).Decode(&item); err != nil {
			return badRequest(c, "invalid item")
		}
		// Lines are addressed by id in the item routes.
		if strings.TrimSpace(string(item.ID)) == "" {
			return badRequest(c, "item id is required")
		}
		v, err := svc.Add(c.Request().Context(), c.Param("id"), item)
		if err != nil {
			return fail(c, logger, err)
		}
		return c.JSON(http.StatusOK, v)
	}
}

func handleSetQuantity(svc interfaces.CartFacade, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req quantityRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid quantity")
		}
		v, err := svc.SetQuantity(c.Request().Context(), c.Param("id"), cart.ID(c.Param("item")), req.Quantity)
		if err != nil {
			return fail(c, logger, err)
		}
		return c.JSON(http.StatusOK, v)
	}
}

func handleRemoveItem(svc interfaces.CartFacade, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := svc.Remove(c.Request().Context(), c.Param("id"), cart.ID(c.Param("item")))
		if err != nil {
			return fail(c, logger, err)
		}
		return c.JSON(http.StatusOK, v)
	}
}

func handleClearCart(svc interfaces.CartFacade, logger *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := svc.Clear(c.Request().Context(), c.Param("id"))
		if err != nil {
			return fail(c, logger, err)
		}
		return c.JSON(http.StatusOK, v)
	}
}

func fail(c echo.Context, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownForm), errors.Is(err, domain.ErrCartNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidEvent), errors.Is(err, domain.ErrInvalidValue):
		return badRequest(c, err.Error())
	case errors.Is(err, domain.ErrUnsupportedForm):
		return c.JSON(http.StatusMethodNotAllowed, map[string]string{"error": err.Error()})
	}
	logger.Error("request failed",
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}
