package service

import (
	"context"
	"testing"

	"coinmarket-backend/internal/config"
	"coinmarket-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type commissionFixture struct {
	creatorRepo *MockCreatorRepository
	productRepo *MockProductRepository
	userRepo    *MockUserRepository
	noteSvc     *MockNotificationService
	emailSvc    *MockEmailService
	svc         CommissionService
}

func newCommissionFixture() *commissionFixture {
	f := &commissionFixture{
		creatorRepo: new(MockCreatorRepository),
		productRepo: new(MockProductRepository),
		userRepo:    new(MockUserRepository),
		noteSvc:     new(MockNotificationService),
		emailSvc:    new(MockEmailService),
	}
	f.svc = NewCommissionService(
		f.creatorRepo, f.productRepo, f.userRepo, f.noteSvc, f.emailSvc,
		config.EconomyConfig{CoinsPerUSD: 100, CommissionPercent: 30},
	)
	return f
}

func TestCommissionService_SettleSale(t *testing.T) {
	ctx := context.Background()
	authorID := int64(9)

	t.Run("SplitsSaleSeventyThirty", func(t *testing.T) {
		f := newCommissionFixture()

		f.productRepo.On("GetByID", ctx, int64(10)).
			Return(&domain.Product{ID: 10, Title: "Brush Pack", AuthorID: &authorID}, nil)
		f.userRepo.On("GetByID", ctx, authorID).
			Return(&domain.User{ID: authorID, IsCreator: true}, nil)
		// 200 coins: 60 commission, 140 earnings
		f.creatorRepo.On("SettleSale", ctx, authorID, int64(140), int64(60), int64(5), int64(10), mock.Anything).
			Return(&domain.CreatorTransaction{Type: domain.CreatorTxSale, Amount: 140, BalanceAfter: 140}, nil)
		f.noteSvc.On("Notify", mock.Anything, authorID, mock.Anything, mock.Anything, mock.Anything).Return()

		tx, err := f.svc.SettleSale(ctx, 10, 5, 200)
		assert.NoError(t, err)
		assert.Equal(t, int64(140), tx.Amount)
		f.creatorRepo.AssertExpectations(t)
	})

	t.Run("NoAuthorSettlesToPlatform", func(t *testing.T) {
		f := newCommissionFixture()

		f.productRepo.On("GetByID", ctx, int64(10)).
			Return(&domain.Product{ID: 10, Title: "First-Party Pack"}, nil)

		tx, err := f.svc.SettleSale(ctx, 10, 5, 200)
		assert.NoError(t, err)
		assert.Nil(t, tx)
		f.creatorRepo.AssertNotCalled(t, "SettleSale")
	})

	t.Run("AuthorNotApprovedCreator", func(t *testing.T) {
		f := newCommissionFixture()

		f.productRepo.On("GetByID", ctx, int64(10)).
			Return(&domain.Product{ID: 10, AuthorID: &authorID}, nil)
		f.userRepo.On("GetByID", ctx, authorID).
			Return(&domain.User{ID: authorID, IsCreator: false}, nil)

		tx, err := f.svc.SettleSale(ctx, 10, 5, 200)
		assert.NoError(t, err)
		assert.Nil(t, tx)
	})

	t.Run("TinySaleRoundsCommissionDown", func(t *testing.T) {
		f := newCommissionFixture()

		f.productRepo.On("GetByID", ctx, int64(10)).
			Return(&domain.Product{ID: 10, AuthorID: &authorID}, nil)
		f.userRepo.On("GetByID", ctx, authorID).
			Return(&domain.User{ID: authorID, IsCreator: true}, nil)
		// 3 coins: commission floors to 0, creator keeps all 3
		f.creatorRepo.On("SettleSale", ctx, authorID, int64(3), int64(0), int64(5), int64(10), mock.Anything).
			Return(&domain.CreatorTransaction{Type: domain.CreatorTxSale, Amount: 3}, nil)
		f.noteSvc.On("Notify", mock.Anything, authorID, mock.Anything, mock.Anything, mock.Anything).Return()

		tx, err := f.svc.SettleSale(ctx, 10, 5, 3)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), tx.Amount)
	})
}

func TestCommissionService_RequestPayout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newCommissionFixture()

		f.userRepo.On("GetByID", ctx, int64(9)).
			Return(&domain.User{ID: 9, IsCreator: true}, nil)
		f.creatorRepo.On("CreatePayout", ctx, mock.MatchedBy(func(p *domain.CreatorPayout) bool {
			return p.CreatorID == 9 && p.AmountCoins == 1000 && p.AmountUSDCents == 1000 &&
				p.Status == domain.PayoutStatusPending && p.Ref != ""
		})).Return(&domain.CreatorTransaction{Type: domain.CreatorTxPayout, Amount: -1000}, nil)

		payout, err := f.svc.RequestPayout(ctx, 9, 1000, "0xabc", "polygon")
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusPending, payout.Status)
	})

	t.Run("NotACreator", func(t *testing.T) {
		f := newCommissionFixture()

		f.userRepo.On("GetByID", ctx, int64(2)).
			Return(&domain.User{ID: 2, IsCreator: false}, nil)

		_, err := f.svc.RequestPayout(ctx, 2, 1000, "0xabc", "polygon")
		assert.Error(t, err)
		f.creatorRepo.AssertNotCalled(t, "CreatePayout")
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		f := newCommissionFixture()

		_, err := f.svc.RequestPayout(ctx, 9, 0, "0xabc", "polygon")
		assert.Error(t, err)
	})
}

func TestCommissionService_PayoutTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("Complete", func(t *testing.T) {
		f := newCommissionFixture()
		hash := "0xdeadbeef"

		f.creatorRepo.On("CompletePayout", ctx, int64(3), hash).
			Return(&domain.CreatorPayout{ID: 3, Ref: "ref-3", CreatorID: 9, Status: domain.PayoutStatusCompleted, TransactionHash: &hash}, nil)
		f.noteSvc.On("Notify", mock.Anything, int64(9), mock.Anything, mock.Anything, mock.Anything).Return()
		f.userRepo.On("GetByID", mock.Anything, int64(9)).
			Return(&domain.User{ID: 9, Email: "c@test.com", Name: "C"}, nil)
		f.emailSvc.On("SendPayoutStatusNotice", mock.Anything, "c@test.com", "C", "ref-3", domain.PayoutStatusCompleted).
			Return(nil)

		payout, err := f.svc.CompletePayout(ctx, 3, hash)
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusCompleted, payout.Status)
	})

	t.Run("RejectRefundsCoins", func(t *testing.T) {
		f := newCommissionFixture()

		f.creatorRepo.On("RejectPayout", ctx, int64(3)).
			Return(&domain.CreatorPayout{ID: 3, Ref: "ref-3", CreatorID: 9, Status: domain.PayoutStatusRejected}, nil)
		f.noteSvc.On("Notify", mock.Anything, int64(9), mock.Anything, mock.Anything, mock.Anything).Return()
		f.userRepo.On("GetByID", mock.Anything, int64(9)).
			Return(&domain.User{ID: 9, Email: "c@test.com", Name: "C"}, nil)
		f.emailSvc.On("SendPayoutStatusNotice", mock.Anything, "c@test.com", "C", "ref-3", domain.PayoutStatusRejected).
			Return(nil)

		payout, err := f.svc.RejectPayout(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.PayoutStatusRejected, payout.Status)
	})

	t.Run("CompleteNonPending", func(t *testing.T) {
		f := newCommissionFixture()

		f.creatorRepo.On("CompletePayout", ctx, int64(3), "0x1").
			Return(nil, domain.ErrPayoutNotPending)

		_, err := f.svc.CompletePayout(ctx, 3, "0x1")
		assert.ErrorIs(t, err, domain.ErrPayoutNotPending)
	})
}
