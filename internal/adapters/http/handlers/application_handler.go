package handlers

import (
	"encoding/json"
	"errors"

	"loanintake-backend/internal/core/services"
	"loanintake-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles the public loan application endpoint
type ApplicationHandler struct {
	clientService *services.ClientService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(clientService *services.ClientService) *ApplicationHandler {
	return &ApplicationHandler{clientService: clientService}
}

// applyRequiredFields lists every field a public applicant must provide.
// alternative_number is the only optional one.
var applyRequiredFields = []string{
	"name",
	"contact_number",
	"father_name",
	"mother_name",
	"qualifications",
	"married_status",
	"current_address",
	"landmark",
	"years_at_address",
	"gmail",
	"office_name",
	"office_address",
	"designation",
	"department",
	"current_experience",
	"overall_experience",
	"reference_name_1",
	"reference_number_1",
	"reference_name_2",
	"reference_number_2",
	"expected_loan_amount",
	"loan_purpose",
}

// Apply handles a public loan application. The record is stored as a direct
// client and randomly assigned to an active employee when one exists.
// @Summary Submit a loan application
// @Tags public
// @Accept json
// @Produce json
// @Param request body services.CreateClientInput true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /client/apply [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	// 1. Check field presence before touching the database so the
	//    applicant gets every missing field named at once
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var missing []string
	for _, field := range applyRequiredFields {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return response.ErrorWithData(c, fiber.StatusBadRequest, "Missing required fields", fiber.Map{
			"missing_fields": missing,
		})
	}

	// 2. Parse the validated payload
	var input services.CreateClientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// 3. Create the client and auto-assign an employee
	client, assignee, err := h.clientService.Apply(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateClient) {
			return response.Conflict(c, "A client with this contact number or gmail already exists")
		}
		return response.InternalServerError(c, "Failed to submit application")
	}

	assignedTo := "Not assigned yet"
	if assignee != nil {
		assignedTo = assignee.Email
	}

	return response.Created(c, "Application submitted successfully", fiber.Map{
		"client":      client.ToResponse(),
		"assigned_to": assignedTo,
	})
}
