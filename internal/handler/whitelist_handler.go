package handler

import (
	"net/http"

	"github.com/Eursukkul/screening-service/internal/dto"
	"github.com/Eursukkul/screening-service/internal/models"
	"github.com/Eursukkul/screening-service/internal/service"
	"github.com/labstack/echo/v4"
)

type WhitelistHandler struct {
	svc service.WhitelistService
}

func NewWhitelistHandler(svc service.WhitelistService) *WhitelistHandler {
	return &WhitelistHandler{svc: svc}
}

func (h *WhitelistHandler) RegisterRoutes(e *echo.Echo) {
	whitelist := e.Group("/api/whitelist")
	whitelist.GET("", h.ListEntries)
	whitelist.POST("", h.CreateEntry)
	whitelist.GET("/check", h.Check)
	whitelist.GET("/:id", h.GetEntry)
	whitelist.DELETE("/:id", h.DeleteEntry)
}

func (h *WhitelistHandler) ListEntries(c echo.Context) error {
	var p models.Pagination
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and per_page must be integers")
	}

	page, err := h.svc.ListEntries(c.Request().Context(), p)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToWhitelistPageResponse(page))
}

func (h *WhitelistHandler) CreateEntry(c echo.Context) error {
	var req dto.CreateWhitelistEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entry, err := h.svc.CreateEntry(c.Request().Context(), service.CreateWhitelistEntryInput{
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
		Reason:      req.Reason,
		ExpiresAt:   req.ExpiresAt,
		IsPermanent: req.IsPermanent,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToWhitelistEntryResponse(entry))
}

func (h *WhitelistHandler) GetEntry(c echo.Context) error {
	id, err := parseID(c, "whitelist entry")
	if err != nil {
		return err
	}

	entry, err := h.svc.GetEntry(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToWhitelistEntryResponse(entry))
}

func (h *WhitelistHandler) DeleteEntry(c echo.Context) error {
	id, err := parseID(c, "whitelist entry")
	if err != nil {
		return err
	}

	if err := h.svc.DeleteEntry(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *WhitelistHandler) Check(c echo.Context) error {
	raw := c.QueryParam("phone")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone is required")
	}

	check, err := h.svc.Check(c.Request().Context(), raw)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToWhitelistCheckResponse(check))
}
