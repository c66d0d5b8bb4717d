package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/service"
)

func TestDonationService_RecordDonation(t *testing.T) {
	ctx := context.Background()
	campaign := &domain.Campaign{ID: "c1", Title: "Roof repair"}

	t.Run("StoresThenIncrements", func(t *testing.T) {
		donations := new(MockDonationRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewDonationService(donations, campaigns, nil)

		campaigns.On("GetByID", ctx, "c1").Return(campaign, nil).Once()
		donations.On("Create", ctx, mock.MatchedBy(func(d *domain.Donation) bool {
			return d.RequestID == "c1" && d.RequestTitle == "Roof repair" && d.Amount == 25 && d.ID != ""
		})).Return(nil).Once()
		campaigns.On("IncrementCollected", ctx, "c1", 25.0).Return(nil).Once()

		d, err := svc.RecordDonation(ctx, domain.DonationInput{RequestID: "c1", DonorUID: "donor-1", Amount: 25, PaymentMethod: "card"})
		require.NoError(t, err)
		assert.Equal(t, "donor-1", d.DonorUID)
		donations.AssertExpectations(t)
		campaigns.AssertExpectations(t)
	})

	t.Run("IdempotencyKeyScopedToDonor", func(t *testing.T) {
		donations := new(MockDonationRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewDonationService(donations, campaigns, nil)
		wantID := service.DonationID("donor-1", "key-123")

		campaigns.On("GetByID", ctx, "c1").Return(campaign, nil).Once()
		donations.On("Create", ctx, mock.MatchedBy(func(d *domain.Donation) bool { return d.ID == wantID })).Return(nil).Once()
		campaigns.On("IncrementCollected", ctx, "c1", 10.0).Return(nil).Once()

		d, err := svc.RecordDonation(ctx, domain.DonationInput{IdempotencyKey: "key-123", RequestID: "c1", DonorUID: "donor-1", Amount: 10})
		require.NoError(t, err)
		assert.Equal(t, wantID, d.ID)
		assert.NotEqual(t, wantID, service.DonationID("donor-2", "key-123"))
	})

	t.Run("ReplayReturnsStoredDonation", func(t *testing.T) {
		donations := new(MockDonationRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewDonationService(donations, campaigns, nil)
		id := service.DonationID("donor-1", "key-123")
		stored := &domain.Donation{ID: id, RequestID: "c1", DonorUID: "donor-1", Amount: 10, RequestTitle: "Roof repair",
			Timestamp: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}

		campaigns.On("GetByID", ctx, "c1").Return(campaign, nil).Once()
		donations.On("Create", ctx, mock.Anything).Return(domain.ErrAlreadyExists).Once()
		donations.On("GetByID", ctx, id).Return(stored, nil).Once()

		d, err := svc.RecordDonation(ctx, domain.DonationInput{IdempotencyKey: "key-123", RequestID: "c1", DonorUID: "donor-1", Amount: 10})
		require.NoError(t, err)
		assert.Equal(t, stored, d)
		campaigns.AssertNotCalled(t, "IncrementCollected", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("KeyReusedForDifferentDonation", func(t *testing.T) {
		donations := new(MockDonationRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewDonationService(donations, campaigns, nil)
		id := service.DonationID("donor-1", "1")
		other := &domain.Campaign{ID: "c2", Title: "School books"}

		campaigns.On("GetByID", ctx, "c2").Return(other, nil).Once()
		donations.On("Create", ctx, mock.Anything).Return(domain.ErrAlreadyExists).Once()
		donations.On("GetByID", ctx, id).Return(&domain.Donation{ID: id, RequestID: "c1", DonorUID: "donor-1", Amount: 10}, nil).Once()

		_, err := svc.RecordDonation(ctx, domain.DonationInput{IdempotencyKey: "1", RequestID: "c2", DonorUID: "donor-1", Amount: 50})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
		campaigns.AssertNotCalled(t, "IncrementCollected", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("GeneratedIDCollisionSurfaces", func(t *testing.T) {
		donations := new(MockDonationRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewDonationService(donations, campaigns, nil)

		campaigns.On("GetByID", ctx, "c1").Return(campaign, nil).Once()
		donations.On("Create", ctx, mock.Anything).Return(domain.ErrAlreadyExists).Once()

		_, err := svc.RecordDonation(ctx, domain.DonationInput{RequestID: "c1", DonorUID: "donor-1", Amount: 10})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
		donations.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("MissingTitleUsesPlaceholder", func(t *testing.T) {
		donations := new(MockDonationRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewDonationService(donations, campaigns, nil)

		campaigns.On("GetByID", ctx, "c2").Return(&domain.Campaign{ID: "c2"}, nil).Once()
		donations.On("Create", ctx, mock.MatchedBy(func(d *domain.Donation) bool {
			return d.RequestTitle == domain.MissingCampaignTitle
		})).Return(nil).Once()
		campaigns.On("IncrementCollected", ctx, "c2", 5.0).Return(nil).Once()

		_, err := svc.RecordDonation(ctx, domain.DonationInput{RequestID: "c2", Amount: 5})
		require.NoError(t, err)
		donations.AssertExpectations(t)
	})

	t.Run("InvalidAmounts", func(t *testing.T) {
		svc := service.NewDonationService(new(MockDonationRepo), new(MockCampaignRepo), nil)
		for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			_, err := svc.RecordDonation(ctx, domain.DonationInput{RequestID: "c1", Amount: amount})
			assert.ErrorIs(t, err, domain.ErrValidation, "amount %v", amount)
		}
	})

	t.Run("UnknownCampaign", func(t *testing.T) {
		donations := new(MockDonationRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewDonationService(donations, campaigns, nil)
		campaigns.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound).Once()

		_, err := svc.RecordDonation(ctx, domain.DonationInput{RequestID: "nope", Amount: 5})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		donations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("IncrementFailureSurfaces", func(t *testing.T) {
		donations := new(MockDonationRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewDonationService(donations, campaigns, nil)

		campaigns.On("GetByID", ctx, "c1").Return(campaign, nil).Once()
		donations.On("Create", ctx, mock.Anything).Return(nil).Once()
		campaigns.On("IncrementCollected", ctx, "c1", 5.0).Return(domain.Upstream("increment", errors.New("down"))).Once()

		_, err := svc.RecordDonation(ctx, domain.DonationInput{RequestID: "c1", Amount: 5})
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})
}

func TestDonationService_ListDonationsByDonor(t *testing.T) {
	ctx := context.Background()

	t.Run("IncludesLegacyDonations", func(t *testing.T) {
		donations := new(MockDonationRepo)
		svc := service.NewDonationService(donations, nil, nil)
		donations.On("ListByDonor", ctx, "donor-1").Return([]domain.Donation{{ID: "d1", RequestTitle: "Roof"}}, nil).Once()
		donations.On("ListByDonor", ctx, domain.LegacyTestDonorUID).Return([]domain.Donation{{ID: "legacy"}}, nil).Once()

		list, err := svc.ListDonationsByDonor(ctx, "donor-1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "d1", list[0].ID)
		assert.Equal(t, "legacy", list[1].ID)
		assert.Equal(t, domain.UnknownCampaignTitle, list[1].RequestTitle)
	})

	t.Run("LegacyDonorNotDuplicated", func(t *testing.T) {
		donations := new(MockDonationRepo)
		svc := service.NewDonationService(donations, nil, nil)
		donations.On("ListByDonor", ctx, domain.LegacyTestDonorUID).Return([]domain.Donation{{ID: "legacy", RequestTitle: "X"}}, nil).Once()

		list, err := svc.ListDonationsByDonor(ctx, domain.LegacyTestDonorUID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		donations.AssertExpectations(t)
	})
}

func TestDonationService_ListAllDonations(t *testing.T) {
	ctx := context.Background()

	t.Run("ResolvesDonorNames", func(t *testing.T) {
		donations := new(MockDonationRepo)
		users := new(MockUserRepo)
		svc := service.NewDonationService(donations, nil, users)

		users.On("GetByID", ctx, "admin-1").Return(adminUser, nil).Once()
		donations.On("List", ctx).Return([]domain.Donation{
			{ID: "d1", DonorUID: "donor-1", RequestTitle: "Roof"},
			{ID: "d2", DonorUID: "ghost"},
		}, nil).Once()
		users.On("GetByID", ctx, "donor-1").Return(donorUser, nil).Once()
		users.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound).Once()

		views, err := svc.ListAllDonations(ctx, "admin-1")
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "Dana Donor", views[0].DonorName)
		assert.Equal(t, domain.UnknownName, views[1].DonorName)
		assert.Equal(t, domain.UnknownCampaignTitle, views[1].RequestTitle)
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		donations := new(MockDonationRepo)
		users := new(MockUserRepo)
		svc := service.NewDonationService(donations, nil, users)
		users.On("GetByID", ctx, "donor-1").Return(donorUser, nil).Once()

		_, err := svc.ListAllDonations(ctx, "donor-1")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		donations.AssertNotCalled(t, "List", mock.Anything)
	})
}

func TestChatService_InitiateChat(t *testing.T) {
	ctx := context.Background()

	t.Run("SameRoomFromEitherSide", func(t *testing.T) {
		chats := new(MockChatRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewChatService(chats, campaigns)

		campaigns.On("GetByID", ctx, "c1").Return(&domain.Campaign{ID: "c1", RequesterUID: "zed"}, nil)
		chats.On("CreateIfAbsent", ctx, mock.MatchedBy(func(r *domain.ChatRoom) bool {
			return r.ID == "c1_amy_zed" && r.Participants[0] == "amy" && r.Participants[1] == "zed"
		})).Return(true, nil).Once()
		chats.On("CreateIfAbsent", ctx, mock.Anything).Return(false, nil).Once()

		first, err := svc.InitiateChat(ctx, "amy", "c1", "amy")
		require.NoError(t, err)
		again, err := svc.InitiateChat(ctx, "zed", "c1", "amy")
		require.NoError(t, err)

		assert.Equal(t, "c1_amy_zed", first.ChatID)
		assert.Equal(t, first.ChatID, again.ChatID)
		assert.Equal(t, "zed", first.RequesterUID)
		assert.Equal(t, domain.ChatRoomID("c1", "amy", "zed"), domain.ChatRoomID("c1", "zed", "amy"))
	})

	t.Run("UnknownCampaign", func(t *testing.T) {
		chats := new(MockChatRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewChatService(chats, campaigns)
		campaigns.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound).Once()

		_, err := svc.InitiateChat(ctx, "amy", "nope", "amy")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		chats.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
	})

	t.Run("OutsiderForbidden", func(t *testing.T) {
		chats := new(MockChatRepo)
		campaigns := new(MockCampaignRepo)
		svc := service.NewChatService(chats, campaigns)
		campaigns.On("GetByID", ctx, "c1").Return(&domain.Campaign{ID: "c1", RequesterUID: "zed"}, nil).Once()

		_, err := svc.InitiateChat(ctx, "mallory", "c1", "amy")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		chats.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
	})
}
