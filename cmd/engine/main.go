package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/Victor-armando18/vinyl-store/internal/config"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure/cartstore"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure/catalog"
	"github.com/Victor-armando18/vinyl-store/internal/interfaces"
	"github.com/Victor-armando18/vinyl-store/internal/usecase"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	loader := infrastructure.NewFileRuleLoader(cfg.RulesPath)
	executor := infrastructure.NewJsonLogicExecutor()
	ruleSets, err := usecase.LoadRuleSets(context.Background(), loader, executor, cfg.RulesVersion)
	if err != nil {
		logger.Fatal("failed to load rule pack",
			zap.String("path", cfg.RulesPath),
			zap.String("version", cfg.RulesVersion),
			zap.Error(err))
	}

	store, err := cartstore.NewFileStore(cfg.CartDir)
	if err != nil {
		logger.Fatal("failed to open cart store", zap.String("dir", cfg.CartDir), zap.Error(err))
	}
	products := catalog.NewMemoryStore()

	formSvc := usecase.NewFormService(ruleSets, products, logger.Named("forms"))
	cartSvc := usecase.NewCartService(store, logger.Named("carts"))

	e := newServer(formSvc, cartSvc, products, cfg.AllowOrigins, logger)

	logger.Info("storefront server started",
		zap.String("port", cfg.Port),
		zap.Strings("forms", formSvc.Forms()))
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("failed to serve", zap.Error(err))
	}
}

func newServer(forms interfaces.FormFacade, carts interfaces.CartFacade, products *catalog.MemoryStore, origins []string, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.GET("/health", handleHealth)

	e.GET("/forms", handleListForms(forms))
	e.POST("/forms/:form/validate", handleValidate(forms, logger))
	e.POST("/forms/:form/events", handleEvent(forms, logger))
	e.PATCH("/forms/:form/values", handlePatch(forms, logger))
	e.POST("/forms/:form/submit", handleSubmit(forms, logger))

	e.GET("/products", handleListProducts(products))
	e.GET("/reports/low-stock", handleLowStock(products))

	e.POST("/carts", handleCreateCart(carts, logger))
	e.GET("/carts/:id", handleGetCart(carts, logger))
	e.POST("/carts/:id/items", handleAddItem(carts, logger))
	e.PUT("/carts/:id/items/:item", handleSetQuantity(carts, logger))
	e.DELETE("/carts/:id/items/:item", handleRemoveItem(carts, logger))
	e.DELETE("/carts/:id/items", handleClearCart(carts, logger))

	return e
}
