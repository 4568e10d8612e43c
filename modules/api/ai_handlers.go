package api

import (
	"strings"

	"github.com/example/task-manager/modules/ai"
	"github.com/gofiber/fiber/v2"
)

// ParseTask parses free text into task fields without creating a task.
func (h *Handlers) ParseTask(c *fiber.Ctx) error {
	if _, ok := currentClaims(c); !ok {
		return unauthenticated(c)
	}

	var req ParseTaskRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Input) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Natural language input is required",
		})
	}

	outcome, err := h.aiAdapter.Parse(c.UserContext(), req.Input)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(outcome)
}

// EnhanceTask returns AI-improved fields for a task.
func (h *Handlers) EnhanceTask(c *fiber.Ctx) error {
	if _, ok := currentClaims(c); !ok {
		return unauthenticated(c)
	}

	var req TaskFieldsRequest
	if err := c.BodyParser(&req); err != nil || req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Task data with title is required",
		})
	}

	enhanced, err := h.aiAdapter.Enhance(c.UserContext(), ai.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(enhanced)
}

// TaskSuggestions returns improvement suggestions for a task.
func (h *Handlers) TaskSuggestions(c *fiber.Ctx) error {
	if _, ok := currentClaims(c); !ok {
		return unauthenticated(c)
	}

	var req TaskFieldsRequest
	if err := c.BodyParser(&req); err != nil || req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Task data with title is required",
		})
	}

	suggestions, err := h.aiAdapter.Suggestions(c.UserContext(), ai.TaskFields{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(SuggestionsResponse{Suggestions: suggestions})
}
