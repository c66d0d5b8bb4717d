package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kindnessconnect-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, uid string) (*domain.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) SetVerified(ctx context.Context, uid string, verified bool) error {
	args := m.Called(ctx, uid, verified)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// MockCampaignRepo
type MockCampaignRepo struct {
	mock.Mock
}

func (m *MockCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}
func (m *MockCampaignRepo) List(ctx context.Context) ([]domain.Campaign, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Campaign), args.Error(1)
}
func (m *MockCampaignRepo) ListByOwner(ctx context.Context, ownerUID string) ([]domain.Campaign, error) {
	args := m.Called(ctx, ownerUID)
	return args.Get(0).([]domain.Campaign), args.Error(1)
}
func (m *MockCampaignRepo) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockCampaignRepo) IncrementCollected(ctx context.Context, id string, amount float64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

// MockDonationRepo
type MockDonationRepo struct {
	mock.Mock
}

func (m *MockDonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDonationRepo) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) List(ctx context.Context) ([]domain.Donation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) ListByDonor(ctx context.Context, donorUID string) ([]domain.Donation, error) {
	args := m.Called(ctx, donorUID)
	return args.Get(0).([]domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).([]domain.Donation), args.Error(1)
}

// MockSponsorRepo
type MockSponsorRepo struct {
	mock.Mock
}

func (m *MockSponsorRepo) Create(ctx context.Context, s *domain.Sponsor) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSponsorRepo) GetByID(ctx context.Context, id string) (*domain.Sponsor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sponsor), args.Error(1)
}
func (m *MockSponsorRepo) List(ctx context.Context) ([]domain.Sponsor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Sponsor), args.Error(1)
}
func (m *MockSponsorRepo) ListActive(ctx context.Context) ([]domain.Sponsor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Sponsor), args.Error(1)
}
func (m *MockSponsorRepo) Update(ctx context.Context, id string, patch domain.SponsorPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockSponsorRepo) SetActiveTheme(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// MockVerificationRepo
type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) Create(ctx context.Context, r *domain.VerificationRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockVerificationRepo) GetByID(ctx context.Context, id string) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationRepo) List(ctx context.Context) ([]domain.VerificationRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationRepo) Update(ctx context.Context, id string, patch domain.VerificationPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

// MockChatRepo
type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) CreateIfAbsent(ctx context.Context, room *domain.ChatRoom) (bool, error) {
	args := m.Called(ctx, room)
	return args.Bool(0), args.Error(1)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendCampaignStatusNotification(ctx context.Context, email, name, title string, status domain.CampaignStatus) error {
	args := m.Called(ctx, email, name, title, status)
	return args.Error(0)
}
func (m *MockEmailService) SendVerificationApprovedNotification(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}

// MockIdentity
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) DeleteIdentity(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// MockTextGenerator
type MockTextGenerator struct {
	mock.Mock
	name string
}

func (m *MockTextGenerator) Name() string { return m.name }
func (m *MockTextGenerator) Generate(ctx context.Context, prompt domain.StoryPrompt) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockThemeGenerator
type MockThemeGenerator struct {
	mock.Mock
}

func (m *MockThemeGenerator) GenerateTheme(ctx context.Context, logo []byte) domain.Theme {
	args := m.Called(ctx, logo)
	return args.Get(0).(domain.Theme)
}

var (
	adminUser = &domain.User{UID: "admin-1", FullName: "Ada Admin", Email: "admin@test.com", Role: domain.RoleAdmin}
	donorUser = &domain.User{UID: "donor-1", FullName: "Dana Donor", Email: "dana@test.com", Role: domain.RoleDonor}
)

func ptr[T any](v T) *T { return &v }
