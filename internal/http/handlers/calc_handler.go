package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alhaja/internal/pricing"
	"alhaja/internal/services"
	"alhaja/internal/validate"
)

// CalcHandler exposes the pricing calculator sessions. Nothing here is
// persisted; a session dies with the process or an explicit close.
type CalcHandler struct {
	Calc *services.CalcService
}

func (h *CalcHandler) sessionOut(c *fiber.Ctx, sess services.CalcSession) error {
	return c.JSON(fiber.Map{"session": sess, "result": sess.Evaluate()})
}

// POST /admin/calc
func (h *CalcHandler) Open(c *fiber.Ctx) error {
	sess := h.Calc.Open()
	return c.JSON(fiber.Map{"session": sess, "result": sess.Evaluate(), "presets": pricing.MarkupPresets})
}

// GET /admin/calc/:id
func (h *CalcHandler) Get(c *fiber.Ctx) error {
	sess, err := h.Calc.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return h.sessionOut(c, sess)
}

// DELETE /admin/calc/:id
func (h *CalcHandler) Close(c *fiber.Ctx) error {
	h.Calc.Close(c.Params("id"))
	return c.JSON(fiber.Map{"ok": true})
}

type lineBody struct {
	LineID string `json:"line_id"`
	Label  string `json:"label"`
	Value  int    `json:"value"`
}

// PUT /admin/calc/:id/lines — set a line's value (and label for custom lines)
func (h *CalcHandler) SetLine(c *fiber.Ctx) error {
	var body lineBody
	if err := c.BodyParser(&body); err != nil || body.LineID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "line_id required"})
	}
	sess, err := h.Calc.SetLine(c.Params("id"), body.LineID, body.Label, body.Value)
	if err != nil {
		return fail(c, err)
	}
	return h.sessionOut(c, sess)
}

// POST /admin/calc/:id/lines — add a custom line
func (h *CalcHandler) AddLine(c *fiber.Ctx) error {
	line, sess, err := h.Calc.AddLine(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"line": line, "session": sess})
}

// DELETE /admin/calc/:id/lines/:lineId
func (h *CalcHandler) RemoveLine(c *fiber.Ctx) error {
	sess, err := h.Calc.RemoveLine(c.Params("id"), c.Params("lineId"))
	if err != nil {
		return fail(c, err)
	}
	return h.sessionOut(c, sess)
}

type modeBody struct {
	Multiplier  float64 `json:"multiplier"`
	TargetPrice int     `json:"target_price"`
}

// POST /admin/calc/:id/markup
func (h *CalcHandler) SetMarkup(c *fiber.Ctx) error {
	var body modeBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "bad json"})
	}
	sess, err := h.Calc.SetMarkup(c.Params("id"), body.Multiplier)
	if err != nil {
		return fail(c, err)
	}
	return h.sessionOut(c, sess)
}

// POST /admin/calc/:id/target
func (h *CalcHandler) SetTarget(c *fiber.Ctx) error {
	var body modeBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "bad json"})
	}
	sess, err := h.Calc.SetTarget(c.Params("id"), body.TargetPrice)
	if err != nil {
		return fail(c, err)
	}
	return h.sessionOut(c, sess)
}

// POST /admin/calc/:id/seed/:productId — load a product's cost and price
func (h *CalcHandler) Seed(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "invalid product id"})
	}
	sess, err := h.Calc.SeedFromProduct(c.Params("id"), pid)
	if err != nil {
		return fail(c, err)
	}
	return h.sessionOut(c, sess)
}
