package service

import (
	"context"
	"errors"
	"fmt"

	"coinmarket-backend/internal/config"
	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/logger"
	"coinmarket-backend/internal/repository"
)

type paymentWebhookService struct {
	ledgerRepo  repository.LedgerRepository
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
	noteSvc     NotificationService
	economy     config.EconomyConfig
}

func NewPaymentWebhookService(
	ledgerRepo repository.LedgerRepository,
	accountRepo repository.AccountRepository,
	userRepo repository.UserRepository,
	noteSvc NotificationService,
	economy config.EconomyConfig,
) PaymentWebhookService {
	return &paymentWebhookService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		noteSvc:     noteSvc,
		economy:     economy,
	}
}

// HandleTopUp credits a confirmed coin pack purchase. Processors redeliver
// webhooks, so the event id is checked up front and enforced again by the
// unique index when two deliveries race.
func (s *paymentWebhookService) HandleTopUp(ctx context.Context, externalEventID string, userID int64, packID string, amountPaidUSDCents int64) (*domain.LedgerEntry, bool, error) {
	if externalEventID == "" {
		return nil, false, errors.New("external event id is required")
	}

	pack := s.economy.FindPack(packID)
	if pack == nil {
		return nil, false, fmt.Errorf("%w: unknown coin pack %q", domain.ErrNotFound, packID)
	}
	if amountPaidUSDCents != pack.PriceUSDCents {
		logger.Warn("Top-up amount differs from pack price", "external_id", externalEventID,
			"pack_id", packID, "paid_cents", amountPaidUSDCents, "price_cents", pack.PriceUSDCents)
	}

	// An event naming a user the engine cannot resolve is the processor's
	// data problem; fail non-retryably rather than crediting an orphan.
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("%w: unknown user %d", domain.ErrNotFound, userID)
		}
		return nil, false, err
	}

	existing, err := s.ledgerRepo.FindByExternalID(ctx, externalEventID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	// First top-up for a new user creates the wallet row; the insert is a
	// no-op when one already exists.
	if err := s.accountRepo.Create(ctx, userID); err != nil {
		return nil, false, err
	}

	total := pack.BaseCoins + domain.PercentShare(pack.BaseCoins, pack.BonusPercent)
	desc := fmt.Sprintf("Coin pack %s top-up", packID)
	entry, err := s.ledgerRepo.Credit(ctx, userID, total, domain.EntryKindDeposit, desc,
		domain.Correlation{ExternalID: &externalEventID})
	if errors.Is(err, domain.ErrDuplicateExternalEvent) {
		// Lost the race against a concurrent delivery of the same event.
		existing, lookupErr := s.ledgerRepo.FindByExternalID(ctx, externalEventID)
		if lookupErr != nil {
			return nil, false, lookupErr
		}
		return existing, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	s.noteSvc.Notify(ctx, userID, "Coins added",
		fmt.Sprintf("%d coins were added to your balance", total),
		map[string]string{"type": "TOP_UP", "pack_id": packID})

	return entry, false, nil
}
