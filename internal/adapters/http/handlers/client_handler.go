package handlers

import (
	"errors"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/core/domain"
	"loanintake-backend/internal/core/services"
	"loanintake-backend/internal/pkg/pagination"
	"loanintake-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles client record requests
type ClientHandler struct {
	clientService *services.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func callerIdentity(c *fiber.Ctx) (uint, domain.Role, bool) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return 0, "", false
	}
	role, ok := c.Locals("role").(domain.Role)
	if !ok {
		return 0, "", false
	}
	return userID, role, true
}

// List returns all clients, paginated
// @Summary List clients
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	clients, total, err := h.clientService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list clients")
	}

	items := make([]*models.ClientResponse, 0, len(clients))
	for _, client := range clients {
		items = append(items, client.ToResponse())
	}

	return response.Success(c, "Clients retrieved", pagination.NewResponse(items, params, total))
}

// Create registers a client through the authenticated generic path
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateClientInput true "Client data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	userID, _, ok := callerIdentity(c)
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

	client, err := h.clientService.Create(c.Context(), &input, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidClientType):
			return response.BadRequest(c, "Invalid client type")
		case errors.Is(err, services.ErrNotAnEmployee):
			return response.BadRequest(c, "Assigned user is not an active employee")
		case errors.Is(err, services.ErrDuplicateClient):
			return response.Conflict(c, "A client with this contact number or gmail already exists")
		default:
			return response.InternalServerError(c, "Failed to create client")
		}
	}

	return response.Created(c, "Client created successfully", client.ToResponse())
}

// GetForEmployee returns one of the caller's own clients
// @Summary Get an owned client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id}/update [get]
func (h *ClientHandler) GetForEmployee(c *fiber.Ctx) error {
	userID, _, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Missing access token")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid client ID")
	}

	client, err := h.clientService.GetForEmployee(c.Context(), uint(id), userID)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return response.NotFound(c, "Client not found or unauthorized")
		}
		return response.InternalServerError(c, "Failed to get client")
	}

	return response.Success(c, "Client retrieved", client.ToResponse())
}

// UpdateForEmployee updates one of the caller's own clients
// @Summary Update an owned client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param request body services.UpdateClientInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id}/update [put]
func (h *ClientHandler) UpdateForEmployee(c *fiber.Ctx) error {
	userID, _, ok := callerIdentity(c)
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

// GetForManager returns any client by ID
// @Summary Get any client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id}/manager-update [get]
func (h *ClientHandler) GetForManager(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid client ID")
	}

	client, err := h.clientService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return response.NotFound(c, "Client not found")
		}
		return response.InternalServerError(c, "Failed to get client")
	}

	return response.Success(c, "Client retrieved", client.ToResponse())
}

// UpdateForManager updates any client, including reassignment
// @Summary Update any client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param request body services.UpdateClientInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id}/manager-update [put]
func (h *ClientHandler) UpdateForManager(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid client ID")
	}

	var input services.UpdateClientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	client, err := h.clientService.UpdateByManager(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Client not found")
		case errors.Is(err, services.ErrNotAnEmployee):
			return response.BadRequest(c, "Assigned user is not an active employee")
		default:
			return response.InternalServerError(c, "Failed to update client")
		}
	}

	return response.Success(c, "Client updated successfully", client.ToResponse())
}

// GetDetails returns the sensitive details record for a client
// @Summary Get client details
// @Tags details
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id}/details-update [get]
func (h *ClientHandler) GetDetails(c *fiber.Ctx) error {
	userID, role, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Missing access token")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid client ID")
	}

	details, err := h.clientService.GetDetails(c.Context(), uint(id), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return response.NotFound(c, "Client not found or unauthorized")
		case errors.Is(err, services.ErrDetailsNotFound):
			return response.NotFound(c, "Client details not found")
		default:
			return response.InternalServerError(c, "Failed to get client details")
		}
	}

	return response.Success(c, "Client details retrieved", details)
}

// UpdateDetails creates or updates the sensitive details record
// @Summary Update client details
// @Tags details
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param request body services.DetailsInput true "Details payload"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id}/details-update [put]
func (h *ClientHandler) UpdateDetails(c *fiber.Ctx) error {
	userID, role, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Missing access token")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid client ID")
	}

	var input services.DetailsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	details, err := h.clientService.UpsertDetails(c.Context(), uint(id), &input, userID, role)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return response.NotFound(c, "Client not found or unauthorized")
		}
		return response.InternalServerError(c, "Failed to update client details")
	}

	return response.Success(c, "Client details saved successfully", details)
}
