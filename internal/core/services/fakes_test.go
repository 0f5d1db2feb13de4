package services

import (
	"context"
	"time"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/core/domain"

	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory UserRepository for service tests
type fakeUserRepo struct {
	users      map[uint]*models.User
	nextID     uint
	getByIDErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	} else if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByCredentials(_ context.Context, email, phone string, dob time.Time, role domain.Role) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email &&
			user.PhoneNumber == phone &&
			user.DOB.Format("2006-01-02") == dob.Format("2006-01-02") &&
			user.Role == role &&
			user.IsActive {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	all := f.all()
	return paginateUsers(all, offset, limit), int64(len(all)), nil
}

func (f *fakeUserRepo) ListEmployees(_ context.Context) ([]*models.User, error) {
	var employees []*models.User
	for _, user := range f.all() {
		if user.Role == domain.RoleEmployee && user.IsActive {
			employees = append(employees, user)
		}
	}
	return employees, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var count int64
	for _, user := range f.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	for _, user := range f.users {
		if user.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

// all returns users ordered by ID for deterministic iteration
func (f *fakeUserRepo) all() []*models.User {
	var out []*models.User
	for id := uint(1); id < f.nextID; id++ {
		if user, ok := f.users[id]; ok {
			out = append(out, user)
		}
	}
	return out
}

func paginateUsers(users []*models.User, offset, limit int) []*models.User {
	if offset >= len(users) {
		return nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end]
}

// fakeRefreshTokenRepo is an in-memory RefreshTokenRepository
type fakeRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[uint]*models.RefreshToken{}, nextID: 1}
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = f.nextID
	f.nextID++
	f.tokens[token.ID] = token
	return nil
}

func (f *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, token := range f.tokens {
		if token.TokenHash == tokenHash {
			return token, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	token, ok := f.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	for _, token := range f.tokens {
		if token.TokenHash == tokenHash {
			now := time.Now()
			token.RevokedAt = &now
			return nil
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	for _, token := range f.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var deleted int64
	for id, token := range f.tokens {
		if token.IsExpired() {
			delete(f.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRefreshTokenRepo) activeCount(userID uint) int {
	count := 0
	for _, token := range f.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			count++
		}
	}
	return count
}

// fakeClientRepo is an in-memory ClientRepository
type fakeClientRepo struct {
	clients   map[uint]*models.Client
	nextID    uint
	createErr error
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[uint]*models.Client{}, nextID: 1}
}

func (f *fakeClientRepo) add(client *models.Client) *models.Client {
	if client.ID == 0 {
		client.ID = f.nextID
		f.nextID++
	} else if client.ID >= f.nextID {
		f.nextID = client.ID + 1
	}
	f.clients[client.ID] = client
	return client
}

func (f *fakeClientRepo) Create(_ context.Context, client *models.Client) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(client)
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id uint) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return client, nil
}

func (f *fakeClientRepo) GetByIDForEmployee(_ context.Context, id, employeeID uint) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok || client.AssignedEmployeeID == nil || *client.AssignedEmployeeID != employeeID {
		return nil, gorm.ErrRecordNotFound
	}
	return client, nil
}

func (f *fakeClientRepo) Update(_ context.Context, client *models.Client) error {
	if _, ok := f.clients[client.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.clients[client.ID] = client
	return nil
}

func (f *fakeClientRepo) List(_ context.Context, offset, limit int) ([]*models.Client, int64, error) {
	all := f.all()
	return paginateClients(all, offset, limit), int64(len(all)), nil
}

func (f *fakeClientRepo) ListByEmployee(_ context.Context, employeeID uint, offset, limit int) ([]*models.Client, int64, error) {
	var owned []*models.Client
	for _, client := range f.all() {
		if client.AssignedEmployeeID != nil && *client.AssignedEmployeeID == employeeID {
			owned = append(owned, client)
		}
	}
	return paginateClients(owned, offset, limit), int64(len(owned)), nil
}

func (f *fakeClientRepo) all() []*models.Client {
	var out []*models.Client
	for id := uint(1); id < f.nextID; id++ {
		if client, ok := f.clients[id]; ok {
			out = append(out, client)
		}
	}
	return out
}

func paginateClients(clients []*models.Client, offset, limit int) []*models.Client {
	if offset >= len(clients) {
		return nil
	}
	end := offset + limit
	if end > len(clients) {
		end = len(clients)
	}
	return clients[offset:end]
}

// fakeDetailsRepo is an in-memory ClientDetailsRepository keyed by client ID
type fakeDetailsRepo struct {
	details map[uint]*models.EmployeeClientDetails
	nextID  uint
}

func newFakeDetailsRepo() *fakeDetailsRepo {
	return &fakeDetailsRepo{details: map[uint]*models.EmployeeClientDetails{}, nextID: 1}
}

func (f *fakeDetailsRepo) Create(_ context.Context, details *models.EmployeeClientDetails) error {
	details.ID = f.nextID
	f.nextID++
	f.details[details.ClientID] = details
	return nil
}

func (f *fakeDetailsRepo) GetByClientID(_ context.Context, clientID uint) (*models.EmployeeClientDetails, error) {
	details, ok := f.details[clientID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return details, nil
}

func (f *fakeDetailsRepo) Update(_ context.Context, details *models.EmployeeClientDetails) error {
	if _, ok := f.details[details.ClientID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.details[details.ClientID] = details
	return nil
}
