package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/core/domain"
	"loanintake-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	employees []*models.User
}

func (r *stubUserRepo) Create(_ context.Context, _ *models.User) error { return nil }

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range r.employees {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByCredentials(_ context.Context, _, _ string, _ time.Time, _ domain.Role) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, _ *models.User) error { return nil }

func (r *stubUserRepo) List(_ context.Context, _, _ int) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (r *stubUserRepo) ListEmployees(_ context.Context) ([]*models.User, error) {
	return r.employees, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, _ domain.Role) (int64, error) { return 0, nil }

func (r *stubUserRepo) ExistsByUsername(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) { return false, nil }

func (r *stubUserRepo) ExistsByPhone(_ context.Context, _ string) (bool, error) { return false, nil }

type stubClientRepo struct {
	createErr error
	created   *models.Client
}

func (r *stubClientRepo) Create(_ context.Context, client *models.Client) error {
	if r.createErr != nil {
		return r.createErr
	}
	client.ID = 1
	r.created = client
	return nil
}

func (r *stubClientRepo) GetByID(_ context.Context, _ uint) (*models.Client, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClientRepo) GetByIDForEmployee(_ context.Context, _, _ uint) (*models.Client, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClientRepo) Update(_ context.Context, _ *models.Client) error { return nil }

func (r *stubClientRepo) List(_ context.Context, _, _ int) ([]*models.Client, int64, error) {
	return nil, 0, nil
}

func (r *stubClientRepo) ListByEmployee(_ context.Context, _ uint, _, _ int) ([]*models.Client, int64, error) {
	return nil, 0, nil
}

type stubDetailsRepo struct{}

func (r *stubDetailsRepo) Create(_ context.Context, _ *models.EmployeeClientDetails) error {
	return nil
}

func (r *stubDetailsRepo) GetByClientID(_ context.Context, _ uint) (*models.EmployeeClientDetails, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDetailsRepo) Update(_ context.Context, _ *models.EmployeeClientDetails) error {
	return nil
}

func newApplyApp(userRepo *stubUserRepo, clientRepo *stubClientRepo) *fiber.App {
	assignment := services.NewAssignmentPolicyWithPicker(userRepo, func(n int) int { return 0 })
	clientService := services.NewClientService(clientRepo, &stubDetailsRepo{}, userRepo, assignment)
	handler := NewApplicationHandler(clientService)

	app := fiber.New()
	app.Post("/client/apply", handler.Apply)
	return app
}

func fullApplication() map[string]interface{} {
	return map[string]interface{}{
		"name":                 "Ravi Kumar",
		"contact_number":       "9000012345",
		"father_name":          "Suresh Kumar",
		"mother_name":          "Lakshmi Kumar",
		"qualifications":       "B.Com",
		"married_status":       true,
		"current_address":      "12 Park Street",
		"landmark":             "near the post office",
		"years_at_address":     4,
		"gmail":                "ravi.kumar@gmail.com",
		"office_name":          "Acme Traders",
		"office_address":       "4 Market Road",
		"designation":          "Accountant",
		"department":           "Finance",
		"current_experience":   3,
		"overall_experience":   8,
		"reference_name_1":     "Anil",
		"reference_number_1":   "9000054321",
		"reference_name_2":     "Sunita",
		"reference_number_2":   "9000067890",
		"expected_loan_amount": 500000,
		"loan_purpose":         "home renovation",
	}
}

func postApplication(t *testing.T, app *fiber.App, payload map[string]interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/client/apply", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

type applyErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		MissingFields []string `json:"missing_fields"`
	} `json:"data"`
}

func TestApplyNamesEveryMissingField(t *testing.T) {
	app := newApplyApp(&stubUserRepo{}, &stubClientRepo{})

	payload := fullApplication()
	omitted := []string{"father_name", "landmark", "reference_number_2", "expected_loan_amount"}
	for _, field := range omitted {
		delete(payload, field)
	}

	resp := postApplication(t, app, payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body applyErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false")
	}

	got := append([]string(nil), body.Data.MissingFields...)
	sort.Strings(got)
	want := append([]string(nil), omitted...)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("expected missing fields %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected missing fields %v, got %v", want, got)
		}
	}
}

func TestApplyTreatsNullValueAsPresent(t *testing.T) {
	clientRepo := &stubClientRepo{}
	app := newApplyApp(&stubUserRepo{}, clientRepo)

	payload := fullApplication()
	payload["landmark"] = nil

	resp := postApplication(t, app, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if clientRepo.created == nil {
		t.Fatal("expected the application to be stored")
	}
}

func TestApplyReportsDuplicateAsConflict(t *testing.T) {
	app := newApplyApp(&stubUserRepo{}, &stubClientRepo{createErr: gorm.ErrDuplicatedKey})

	resp := postApplication(t, app, fullApplication())
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestApplyAssignsAnEmployee(t *testing.T) {
	userRepo := &stubUserRepo{employees: []*models.User{
		{ID: 7, Username: "agent", Email: "agent@example.com", Role: domain.RoleEmployee, IsActive: true},
	}}
	clientRepo := &stubClientRepo{}
	app := newApplyApp(userRepo, clientRepo)

	resp := postApplication(t, app, fullApplication())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			AssignedTo string `json:"assigned_to"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Data.AssignedTo != "agent@example.com" {
		t.Fatalf("expected assignment to agent@example.com, got %q", body.Data.AssignedTo)
	}
	if clientRepo.created == nil || clientRepo.created.AssignedEmployeeID == nil || *clientRepo.created.AssignedEmployeeID != 7 {
		t.Fatal("stored client does not carry the assigned employee")
	}
}
