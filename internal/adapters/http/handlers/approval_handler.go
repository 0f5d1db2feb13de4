package handlers

import (
	"context"
	"errors"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/core/domain"
	"loanintake-backend/internal/core/services"
	"loanintake-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApprovalHandler handles the approval workflow endpoints
type ApprovalHandler struct {
	approvalService *services.ApprovalService
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(approvalService *services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// SubmitForApproval submits an owned client for manager approval. The
// details record must exist and carry every approval-critical field.
// @Summary Submit a client for approval
// @Tags approval
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id}/send-approval [post]
func (h *ApprovalHandler) SubmitForApproval(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Missing access token")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid client ID")
	}

	summary, err := h.approvalService.SubmitForApproval(c.Context(), uint(id), userID)
	if err != nil {
		if completeness, ok := domain.AsCompleteness(err); ok {
			return response.ErrorWithData(c, fiber.StatusBadRequest, "Client details are incomplete", fiber.Map{
				"missing_fields": completeness.Missing,
			})
		}

		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Client not found or unauthorized")
		case errors.Is(err, services.ErrNotEmployeeRegistered):
			return response.BadRequest(c, "Only employee registered clients can be sent for approval")
		case errors.Is(err, services.ErrDetailsNotFound):
			return response.BadRequest(c, "Client details must be filled before sending for approval")
		default:
			return response.InternalServerError(c, "Failed to send client for approval")
		}
	}

	return response.Success(c, "Client sent for approval", summary)
}

// Approve marks a pending client as approved
// @Summary Approve a client
// @Tags approval
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /clients/{id}/approve [put]
func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, h.approvalService.Approve, "Client approved successfully")
}

// Reject marks a pending client as rejected
// @Summary Reject a client
// @Tags approval
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /clients/{id}/reject [put]
func (h *ApprovalHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.approvalService.Reject, "Client rejected")
}

func (h *ApprovalHandler) decide(
	c *fiber.Ctx,
	fn func(ctx context.Context, clientID uint) (*models.Client, error),
	message string,
) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid client ID")
	}

	client, err := fn(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Client not found")
		case errors.Is(err, services.ErrInvalidStatusTransition):
			return response.BadRequest(c, "Client is not pending approval")
		default:
			return response.InternalServerError(c, "Failed to update approval status")
		}
	}

	return response.Success(c, message, client.ToResponse())
}
