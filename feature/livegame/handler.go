package livegame

import (
	"game-tracker/core/apperror"
	"game-tracker/core/logger"
	"game-tracker/core/utils"
	"game-tracker/feature/livegame/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for live games.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the live game routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/games/:id")
	group.Post("/reenter", h.HandleReenter)
	group.Get("/wizard", h.HandleView)
	group.Post("/points/first", h.HandleFirstPoint)
	group.Post("/points/next", h.HandleAdvance)
	group.Post("/points/back", h.HandleBack)
	group.Put("/players", h.HandleCommitPlayers)
	group.Put("/pulling", h.HandlePullingTeam)
	group.Post("/actions", h.HandleRecord)
	group.Delete("/actions/last", h.HandleUndo)
	group.Post("/finish", h.HandleFinish)
	group.Post("/push", h.HandlePush)
}

type pullingRequest struct {
	PullingTeam models.TeamNumber `json:"pullingTeam"`
}

type playersRequest struct {
	Players models.PlayerList `json:"players"`
}

// HandleReenter resumes a game.
func (h *Handler) HandleReenter(c *fiber.Ctx) error {
	result, err := h.service.Reenter(c.UserContext(), c.Params("id"), h.team(c))
	if err != nil {
		return h.fail(c, "Reenter failed", err)
	}
	return c.JSON(result)
}

// HandleView returns the wizard state of a game.
func (h *Handler) HandleView(c *fiber.Ctx) error {
	view, err := h.service.View(c.UserContext(), c.Params("id"), h.team(c))
	if err != nil {
		return h.fail(c, "Wizard lookup failed", err)
	}
	return c.JSON(view)
}

// HandleFirstPoint starts a game.
func (h *Handler) HandleFirstPoint(c *fiber.Ctx) error {
	var req pullingRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c)
	}
	view, err := h.service.StartFirstPoint(c.UserContext(), c.Params("id"), h.team(c), req.PullingTeam)
	if err != nil {
		return h.fail(c, "First point failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleAdvance moves to the next point.
func (h *Handler) HandleAdvance(c *fiber.Ctx) error {
	var req pullingRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c)
	}
	view, err := h.service.Advance(c.UserContext(), c.Params("id"), h.team(c), req.PullingTeam)
	if err != nil {
		return h.fail(c, "Next point failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleBack steps the wizard back.
func (h *Handler) HandleBack(c *fiber.Ctx) error {
	view, err := h.service.Back(c.UserContext(), c.Params("id"), h.team(c))
	if err != nil {
		return h.fail(c, "Back failed", err)
	}
	return c.JSON(view)
}

// HandleCommitPlayers puts players on the field.
func (h *Handler) HandleCommitPlayers(c *fiber.Ctx) error {
	var req playersRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c)
	}
	view, err := h.service.CommitPlayers(c.UserContext(), c.Params("id"), h.team(c), req.Players)
	if err != nil {
		return h.fail(c, "Set players failed", err)
	}
	return c.JSON(view)
}

// HandlePullingTeam changes the pulling team.
func (h *Handler) HandlePullingTeam(c *fiber.Ctx) error {
	var req pullingRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c)
	}
	view, err := h.service.SetPullingTeam(c.UserContext(), c.Params("id"), h.team(c), req.PullingTeam)
	if err != nil {
		return h.fail(c, "Set pulling team failed", err)
	}
	return c.JSON(view)
}

// HandleRecord records an action.
func (h *Handler) HandleRecord(c *fiber.Ctx) error {
	var action models.Action
	if err := c.BodyParser(&action); err != nil {
		return h.badRequest(c)
	}
	view, err := h.service.Record(c.UserContext(), c.Params("id"), h.team(c), action)
	if err != nil {
		return h.fail(c, "Record action failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleUndo undoes the last action.
func (h *Handler) HandleUndo(c *fiber.Ctx) error {
	view, err := h.service.Undo(c.UserContext(), c.Params("id"), h.team(c))
	if err != nil {
		return h.fail(c, "Undo failed", err)
	}
	return c.JSON(view)
}

// HandleFinish finishes a game.
func (h *Handler) HandleFinish(c *fiber.Ctx) error {
	dest, err := h.service.Finish(c.UserContext(), c.Params("id"), h.team(c))
	if err != nil {
		return h.fail(c, "Finish failed", err)
	}
	return c.JSON(fiber.Map{"destination": dest})
}

// HandlePush uploads an offline game. With ?dry_run=true only the plan is returned.
func (h *Handler) HandlePush(c *fiber.Ctx) error {
	gameID := c.Params("id")
	if utils.ToBool(c.Query("dry_run")) {
		plan, err := h.service.PlanPush(c.UserContext(), gameID)
		if err != nil {
			return h.fail(c, "Push plan failed", err)
		}
		return c.JSON(plan)
	}

	result, err := h.service.Push(c.UserContext(), gameID)
	if err != nil {
		return h.fail(c, "Push failed", err)
	}
	return c.JSON(result)
}

func (h *Handler) team(c *fiber.Ctx) models.TeamNumber {
	if t := c.Query("team"); t != "" {
		return models.TeamNumber(t)
	}
	return h.service.DefaultTeam()
}

func (h *Handler) badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithGame(logger.WithRayID(h.logger, c), c.Params("id"), string(h.team(c)))
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": apperror.Message(err)})
}

func statusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return fiber.StatusUnprocessableEntity
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindNetwork:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
