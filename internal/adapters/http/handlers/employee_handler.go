package handlers

import (
	"errors"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/core/services"
	"loanintake-backend/internal/pkg/pagination"
	"loanintake-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles the employee-scoped client surface where every
// operation is bound to the caller's own caseload
type EmployeeHandler struct {
	clientService *services.ClientService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(clientService *services.ClientService) *EmployeeHandler {
	return &EmployeeHandler{clientService: clientService}
}

// ListClients returns the caller's own clients
// @Summary List own clients
// @Tags employee
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /employee/clients [get]
func (h *EmployeeHandler) ListClients(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Missing access token")
	}

	params := pagination.GetParams(c)

	clients, total, err := h.clientService.ListByEmployee(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list clients")
	}

	items := make([]*models.ClientResponse, 0, len(clients))
	for _, client := range clients {
		items = append(items, client.ToResponse())
	}

	return response.Success(c, "Clients retrieved", pagination.NewResponse(items, params, total))
}

// CreateClient registers a client owned by the caller
// @Summary Register an own client
// @Tags employee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateClientInput true "Client data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employee/clients [post]
func (h *EmployeeHandler) CreateClient(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Missing access token")
	}

	var input services.CreateClientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Name == "" || input.ContactNumber == "" || input.Gmail == "" {
		return response.BadRequest(c, "Name, contact number and gmail are required")
	}

	client, err := h.clientService.CreateForEmployee(c.Context(), &input, userID)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateClient) {
			return response.Conflict(c, "A client with this contact number or gmail already exists")
		}
		return response.InternalServerError(c, "Failed to create client")
	}

	return response.Created(c, "Client created successfully", client.ToResponse())
}

// UpdateClient updates one of the caller's own clients
// @Summary Update an own client
// @Tags employee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param request body services.UpdateClientInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employee/clients/{id} [put]
func (h *EmployeeHandler) UpdateClient(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Missing access token")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid client ID")
	}

	var input services.UpdateClientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	client, err := h.clientService.UpdateForEmployee(c.Context(), uint(id), userID, &input)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return response.NotFound(c, "Client not found or unauthorized")
		}
		return response.InternalServerError(c, "Failed to update client")
	}

	return response.Success(c, "Client updated successfully", client.ToResponse())
}
