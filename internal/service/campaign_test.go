package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/service"
)

func TestCampaignService_CreateCampaign(t *testing.T) {
	ctx := context.Background()
	input := domain.CampaignInput{
		Title:            "Roof repair",
		Category:         "Housing",
		Story:            "Storm damage",
		GoalAmount:       5000,
		Deadline:         "2026-12-31",
		ShowNamePublicly: true,
	}
	cover := domain.Upload{Filename: "cover.JPG", ContentType: "image/jpeg", Data: []byte("jpg")}

	t.Run("UploadsCoverThenGalleryInOrder", func(t *testing.T) {
		campaigns := new(MockCampaignRepo)
		users := new(MockUserRepo)
		store := new(MockStorage)
		svc := service.NewCampaignService(campaigns, users, store, nil)

		var keys []string
		store.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { keys = append(keys, args.String(1)) }).
			Return("https://files/x", nil).Times(3)
		campaigns.On("Create", ctx, mock.MatchedBy(func(c *domain.Campaign) bool {
			return c.Status == domain.CampaignStatusPending && c.CollectedAmount == 0 &&
				c.RequesterUID == "owner-1" && len(c.GalleryURLs) == 2 && c.ID != ""
		})).Return(nil).Once()
		users.On("GetByID", ctx, "owner-1").Return(&domain.User{UID: "owner-1", FullName: "Olive Owner", IsVerified: true}, nil).Once()

		gallery := []domain.Upload{
			{Filename: "a.png", Data: []byte("a")},
			{},
			{Filename: "b.png", Data: []byte("b")},
		}
		view, err := svc.CreateCampaign(ctx, "owner-1", input, cover, gallery)
		require.NoError(t, err)
		assert.Equal(t, "Olive Owner", view.RequesterName)
		assert.True(t, view.RequesterVerified)

		require.Len(t, keys, 3)
		assert.True(t, strings.HasPrefix(keys[0], "campaigns/"))
		assert.True(t, strings.HasSuffix(keys[0], ".jpg"))
		assert.True(t, strings.HasPrefix(keys[1], "campaigns/gallery/"))
		assert.True(t, strings.HasPrefix(keys[2], "campaigns/gallery/"))
		campaigns.AssertExpectations(t)
	})

	t.Run("RejectsNonPositiveGoal", func(t *testing.T) {
		svc := service.NewCampaignService(new(MockCampaignRepo), new(MockUserRepo), new(MockStorage), nil)
		bad := input
		bad.GoalAmount = 0
		_, err := svc.CreateCampaign(ctx, "owner-1", bad, cover, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("RequiresCover", func(t *testing.T) {
		svc := service.NewCampaignService(new(MockCampaignRepo), new(MockUserRepo), new(MockStorage), nil)
		_, err := svc.CreateCampaign(ctx, "owner-1", input, domain.Upload{}, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("UploadFailureStoresNothing", func(t *testing.T) {
		campaigns := new(MockCampaignRepo)
		store := new(MockStorage)
		svc := service.NewCampaignService(campaigns, new(MockUserRepo), store, nil)
		store.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket gone")).Once()

		_, err := svc.CreateCampaign(ctx, "owner-1", input, cover, nil)
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		campaigns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCampaignService_ListCampaigns(t *testing.T) {
	ctx := context.Background()
	campaigns := new(MockCampaignRepo)
	users := new(MockUserRepo)
	svc := service.NewCampaignService(campaigns, users, nil, nil)

	campaigns.On("List", ctx).Return([]domain.Campaign{
		{ID: "c1", RequesterUID: "owner-1", ShowNamePublicly: true},
		{ID: "c2", RequesterUID: "owner-1", ShowNamePublicly: false},
		{ID: "c3", RequesterUID: "gone", ShowNamePublicly: true},
	}, nil).Once()
	// The owner lookup is cached across the listing.
	users.On("GetByID", ctx, "owner-1").Return(&domain.User{UID: "owner-1", FullName: "Olive Owner", IsVerified: true}, nil).Once()
	users.On("GetByID", ctx, "gone").Return(nil, domain.ErrNotFound).Once()

	views, err := svc.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "Olive Owner", views[0].RequesterName)
	assert.Equal(t, domain.AnonymousName, views[1].RequesterName)
	assert.True(t, views[1].RequesterVerified)
	assert.Equal(t, domain.UnknownName, views[2].RequesterName)
	assert.False(t, views[2].RequesterVerified)
	users.AssertExpectations(t)
}

func TestCampaignService_GetCampaign(t *testing.T) {
	ctx := context.Background()
	campaigns := new(MockCampaignRepo)
	svc := service.NewCampaignService(campaigns, new(MockUserRepo), nil, nil)
	campaigns.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound).Once()

	_, err := svc.GetCampaign(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCampaignService_SetStatus(t *testing.T) {
	ctx := context.Background()
	campaign := &domain.Campaign{ID: "c1", Title: "Roof repair", RequesterUID: "owner-1"}
	owner := &domain.User{UID: "owner-1", FullName: "Olive Owner", Email: "olive@test.com"}

	t.Run("VerifyNotifiesOwner", func(t *testing.T) {
		campaigns := new(MockCampaignRepo)
		users := new(MockUserRepo)
		email := new(MockEmailService)
		svc := service.NewCampaignService(campaigns, users, nil, email)

		users.On("GetByID", ctx, "admin-1").Return(adminUser, nil).Once()
		campaigns.On("GetByID", ctx, "c1").Return(campaign, nil).Once()
		campaigns.On("UpdateStatus", ctx, "c1", domain.CampaignStatusVerified).Return(nil).Once()
		users.On("GetByID", ctx, "owner-1").Return(owner, nil).Once()
		email.On("SendCampaignStatusNotification", ctx, "olive@test.com", "Olive Owner", "Roof repair", domain.CampaignStatusVerified).Return(nil).Once()

		warnings, err := svc.SetStatus(ctx, "admin-1", "c1", domain.CampaignStatusVerified)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		campaigns.AssertExpectations(t)
		email.AssertExpectations(t)
	})

	t.Run("EmailFailureIsWarning", func(t *testing.T) {
		campaigns := new(MockCampaignRepo)
		users := new(MockUserRepo)
		email := new(MockEmailService)
		svc := service.NewCampaignService(campaigns, users, nil, email)

		users.On("GetByID", ctx, "admin-1").Return(adminUser, nil).Once()
		campaigns.On("GetByID", ctx, "c1").Return(campaign, nil).Once()
		campaigns.On("UpdateStatus", ctx, "c1", domain.CampaignStatusRejected).Return(nil).Once()
		users.On("GetByID", ctx, "owner-1").Return(owner, nil).Once()
		email.On("SendCampaignStatusNotification", ctx, mock.Anything, mock.Anything, mock.Anything, domain.CampaignStatusRejected).
			Return(errors.New("smtp down")).Once()

		warnings, err := svc.SetStatus(ctx, "admin-1", "c1", domain.CampaignStatusRejected)
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, "notify campaign owner", warnings[0].Op)
	})

	t.Run("NonAdminChangesNothing", func(t *testing.T) {
		campaigns := new(MockCampaignRepo)
		users := new(MockUserRepo)
		svc := service.NewCampaignService(campaigns, users, nil, nil)
		users.On("GetByID", ctx, "donor-1").Return(donorUser, nil).Once()

		_, err := svc.SetStatus(ctx, "donor-1", "c1", domain.CampaignStatusVerified)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		campaigns.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownCampaign", func(t *testing.T) {
		campaigns := new(MockCampaignRepo)
		users := new(MockUserRepo)
		svc := service.NewCampaignService(campaigns, users, nil, nil)
		users.On("GetByID", ctx, "admin-1").Return(adminUser, nil).Once()
		campaigns.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound).Once()

		_, err := svc.SetStatus(ctx, "admin-1", "nope", domain.CampaignStatusVerified)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewCampaignService(new(MockCampaignRepo), users, nil, nil)
		users.On("GetByID", ctx, "admin-1").Return(adminUser, nil).Once()

		_, err := svc.SetStatus(ctx, "admin-1", "c1", domain.CampaignStatusPending)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
