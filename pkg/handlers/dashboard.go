package handlers

import (
	"encoding/json"
	"errors"
	"html/template"

	"bluepriori-dashboard/pkg/interfaces"
	"bluepriori-dashboard/pkg/models"
	"bluepriori-dashboard/pkg/render"
	service "bluepriori-dashboard/pkg/services"
	utils "bluepriori-dashboard/pkg/utils"
	"bluepriori-dashboard/pkg/version"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	dashboard interfaces.DashboardInterface
	log       *utils.Logger
}

func NewDashboardHandler(dashboard interfaces.DashboardInterface, logger *utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		log:       logger,
	}
}

// fail maps dashboard errors to a response
func (h *DashboardHandler) fail(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, service.ErrLoopStopped) {
		return loopUnavailable(c)
	}
	h.log.WithFunc().WithError(err).Error(message)
	return HTTPError(c, fiber.StatusInternalServerError, message)
}

// respondView answers with the snapshot taken after an action
func (h *DashboardHandler) respondView(c *fiber.Ctx, status int) error {
	view, err := h.dashboard.View()
	if err != nil {
		return h.fail(c, err, "Failed to build view")
	}
	return c.Status(status).JSON(view)
}

// columns pairs each sortable key with its header, arrow included
func columns(sort models.SortState) []fiber.Map {
	headers := render.Headers(sort)
	cols := make([]fiber.Map, 0, len(headers))
	for i, key := range models.SortKeys {
		cols = append(cols, fiber.Map{"Key": string(key), "Title": headers[i]})
	}
	return cols
}

func (h *DashboardHandler) DisplayDashboard(c *fiber.Ctx) error {
	h.log.WithFunc().Debug("Processing dashboard page request")

	view, err := h.dashboard.View()
	if err != nil {
		h.log.WithFunc().WithError(err).Error("Failed to build view")
		return c.Status(500).Render("error", fiber.Map{
			"Error": "Failed to load dashboard",
		})
	}

	// le template recharge l'état via /api/view, on fournit le premier rendu
	state, err := json.Marshal(view)
	if err != nil {
		h.log.WithFunc().WithError(err).Error("Failed to encode view")
		return c.Status(500).Render("error", fiber.Map{
			"Error": "Failed to load dashboard",
		})
	}

	return c.Render("dashboard", fiber.Map{
		"Title":   "BluePriori",
		"Version": version.String(),
		"View":    view,
		"Columns": columns(view.Sort),
		"State":   template.JS(state),
	})
}

func (h *DashboardHandler) GetView(c *fiber.Ctx) error {
	return h.respondView(c, fiber.StatusOK)
}

func (h *DashboardHandler) SortBy(c *fiber.Ctx) error {
	key := c.Params("key")
	h.log.WithFunc().WithField("key", key).Debug("Processing sort request")

	ok, err := h.dashboard.Sort(key)
	if err != nil {
		return h.fail(c, err, "Failed to sort assets")
	}
	if !ok {
		return HTTPError(c, fiber.StatusBadRequest, "Unknown sort key")
	}
	return h.respondView(c, fiber.StatusOK)
}

func (h *DashboardHandler) NextPage(c *fiber.Ctx) error {
	moved, err := h.dashboard.Next()
	if err != nil {
		return h.fail(c, err, "Failed to change page")
	}
	if !moved {
		return HTTPError(c, fiber.StatusConflict, "No next page")
	}
	return h.respondView(c, fiber.StatusAccepted)
}

func (h *DashboardHandler) PrevPage(c *fiber.Ctx) error {
	moved, err := h.dashboard.Prev()
	if err != nil {
		return h.fail(c, err, "Failed to change page")
	}
	if !moved {
		return HTTPError(c, fiber.StatusConflict, "No previous page")
	}
	return h.respondView(c, fiber.StatusAccepted)
}

func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	if err := h.dashboard.Refresh(); err != nil {
		return h.fail(c, err, "Failed to refresh assets")
	}
	return h.respondView(c, fiber.StatusAccepted)
}

func (h *DashboardHandler) SelectAsset(c *fiber.Ctx) error {
	id, err := utils.ValidateAssetID(c.Params("id"))
	if err != nil {
		h.log.WithFunc().WithError(err).Debug("Rejected asset selection")
		return HTTPError(c, fiber.StatusBadRequest, err.Error())
	}

	h.log.WithFunc().WithFields(logrus.Fields{
		"assetId": id,
	}).Debug("Selecting asset")

	if err := h.dashboard.Select(id); err != nil {
		return h.fail(c, err, "Failed to select asset")
	}
	return h.GetDetail(c.Status(fiber.StatusAccepted))
}

func (h *DashboardHandler) CloseDetail(c *fiber.Ctx) error {
	if err := h.dashboard.Close(); err != nil {
		return h.fail(c, err, "Failed to close detail")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DashboardHandler) GetDetail(c *fiber.Ctx) error {
	view, err := h.dashboard.View()
	if err != nil {
		return h.fail(c, err, "Failed to build view")
	}
	return c.JSON(view.Detail)
}

func (h *DashboardHandler) Health(c *fiber.Ctx) error {
	return c.SendString("OK")
}

func (h *DashboardHandler) Version(c *fiber.Ctx) error {
	return c.JSON(version.Info())
}
