package service

import (
	"context"
	"errors"
	"fmt"

	"coinmarket-backend/internal/config"
	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/logger"
	"coinmarket-backend/internal/repository"

	"github.com/google/uuid"
)

type commissionService struct {
	creatorRepo repository.CreatorRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	noteSvc     NotificationService
	emailSvc    EmailService
	economy     config.EconomyConfig
}

func NewCommissionService(
	creatorRepo repository.CreatorRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	noteSvc NotificationService,
	emailSvc EmailService,
	economy config.EconomyConfig,
) CommissionService {
	return &commissionService{
		creatorRepo: creatorRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		noteSvc:     noteSvc,
		emailSvc:    emailSvc,
		economy:     economy,
	}
}

// SettleSale credits the product's author their share of a sale, net of the
// platform commission. Products without an approved-creator author settle
// entirely to the platform and produce no transaction.
func (s *commissionService) SettleSale(ctx context.Context, productID, orderID, saleCoins int64) (*domain.CreatorTransaction, error) {
	if saleCoins <= 0 {
		return nil, nil
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.AuthorID == nil {
		return nil, nil
	}

	author, err := s.userRepo.GetByID(ctx, *product.AuthorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !author.IsCreator {
		return nil, nil
	}

	commission := domain.PercentShare(saleCoins, s.economy.CommissionPercent)
	earnings := saleCoins - commission
	if earnings == 0 {
		return nil, nil
	}

	desc := fmt.Sprintf("Sale of %q", product.Title)
	tx, err := s.creatorRepo.SettleSale(ctx, author.ID, earnings, commission, orderID, productID, desc)
	if err != nil {
		return nil, err
	}

	s.noteSvc.Notify(ctx, author.ID, "You made a sale",
		fmt.Sprintf("%q sold for %d coins; %d coins were added to your creator balance", product.Title, saleCoins, earnings),
		map[string]string{"type": "CREATOR_SALE", "product_id": fmt.Sprintf("%d", productID)})

	return tx, nil
}

func (s *commissionService) GetCreatorBalance(ctx context.Context, creatorID int64) (int64, error) {
	return s.creatorRepo.GetBalance(ctx, creatorID)
}

func (s *commissionService) GetCreatorTransactions(ctx context.Context, creatorID int64, page, pageSize int32) ([]domain.CreatorTransaction, int64, error) {
	return s.creatorRepo.ListTransactions(ctx, creatorID, page, pageSize)
}

func (s *commissionService) RequestPayout(ctx context.Context, creatorID, amountCoins int64, address, network string) (*domain.CreatorPayout, error) {
	if amountCoins <= 0 {
		return nil, errors.New("payout amount must be positive")
	}
	if address == "" {
		return nil, errors.New("payout address is required")
	}

	user, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if !user.IsCreator {
		return nil, errors.New("user is not an approved creator")
	}

	payout := &domain.CreatorPayout{
		Ref:            uuid.NewString(),
		CreatorID:      creatorID,
		AmountCoins:    amountCoins,
		AmountUSDCents: domain.USDCentsFromCoins(amountCoins, s.economy.CoinsPerUSD),
		Address:        address,
		Network:        network,
		Status:         domain.PayoutStatusPending,
	}
	if _, err := s.creatorRepo.CreatePayout(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

func (s *commissionService) CompletePayout(ctx context.Context, payoutID int64, txHash string) (*domain.CreatorPayout, error) {
	payout, err := s.creatorRepo.CompletePayout(ctx, payoutID, txHash)
	if err != nil {
		return nil, err
	}
	s.notifyPayoutStatus(ctx, payout)
	return payout, nil
}

func (s *commissionService) RejectPayout(ctx context.Context, payoutID int64) (*domain.CreatorPayout, error) {
	payout, err := s.creatorRepo.RejectPayout(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	s.notifyPayoutStatus(ctx, payout)
	return payout, nil
}

func (s *commissionService) notifyPayoutStatus(ctx context.Context, payout *domain.CreatorPayout) {
	s.noteSvc.Notify(ctx, payout.CreatorID, "Payout update",
		fmt.Sprintf("Your payout request %s is now %s", payout.Ref, payout.Status),
		map[string]string{"type": "PAYOUT_STATUS", "payout_id": fmt.Sprintf("%d", payout.ID)})

	user, err := s.userRepo.GetByID(ctx, payout.CreatorID)
	if err != nil {
		logger.Warn("Payout notice user lookup failed", "payout_id", payout.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendPayoutStatusNotice(ctx, user.Email, user.Name, payout.Ref, payout.Status); err != nil {
		logger.Warn("Payout status email failed", "payout_id", payout.ID, "error", err)
	}
}
