package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coinmarket-backend/internal/config"
	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/logger"
	"coinmarket-backend/internal/repository"
)

type subscriptionService struct {
	subRepo     repository.SubscriptionRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	noteSvc     NotificationService
	emailSvc    EmailService
	economy     config.EconomyConfig
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	noteSvc NotificationService,
	emailSvc EmailService,
	economy config.EconomyConfig,
) SubscriptionService {
	return &subscriptionService{
		subRepo:     subRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		noteSvc:     noteSvc,
		emailSvc:    emailSvc,
		economy:     economy,
	}
}

func (s *subscriptionService) period() time.Duration {
	return time.Duration(s.economy.SubscriptionDays) * 24 * time.Hour
}

// Purchase buys a period of premium access. A user with a running
// subscription gets its end date pushed forward instead of a second row, so
// paying early never wastes remaining days.
func (s *subscriptionService) Purchase(ctx context.Context, userID int64) (*SubscriptionPurchaseResult, error) {
	price := s.economy.SubscriptionPriceCoins
	now := time.Now()

	current, err := s.subRepo.GetActiveByUser(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if current != nil && !current.Lapsed(now) {
		entry, newEnd, err := s.subRepo.Extend(ctx, current.ID, userID, price, s.period())
		if err != nil {
			return nil, err
		}
		current.EndDate = newEnd
		s.noteSvc.Notify(ctx, userID, "Subscription extended",
			fmt.Sprintf("Your subscription now runs until %s", newEnd.Format("2006-01-02")),
			map[string]string{"type": "SUBSCRIPTION_EXTENDED", "subscription_id": fmt.Sprintf("%d", current.ID)})
		return &SubscriptionPurchaseResult{
			Subscription: current,
			CoinsSpent:   price,
			NewBalance:   entry.BalanceAfter,
			IsExtension:  true,
		}, nil
	}

	premium, err := s.productRepo.ListPremium(ctx)
	if err != nil {
		return nil, err
	}
	premiumIDs := make([]int64, 0, len(premium))
	for _, p := range premium {
		premiumIDs = append(premiumIDs, p.ID)
	}

	sub := &domain.Subscription{
		UserID:        userID,
		StartDate:     now,
		EndDate:       now.Add(s.period()),
		Status:        domain.SubscriptionStatusActive,
		IsAutoRenewal: true,
	}
	entry, err := s.subRepo.Purchase(ctx, sub, price, premiumIDs)
	if err != nil {
		return nil, err
	}

	s.noteSvc.Notify(ctx, userID, "Subscription active",
		fmt.Sprintf("Your subscription is active until %s", sub.EndDate.Format("2006-01-02")),
		map[string]string{"type": "SUBSCRIPTION_STARTED", "subscription_id": fmt.Sprintf("%d", sub.ID)})

	return &SubscriptionPurchaseResult{
		Subscription: sub,
		CoinsSpent:   price,
		NewBalance:   entry.BalanceAfter,
	}, nil
}

func (s *subscriptionService) GetCurrent(ctx context.Context, userID int64) (*domain.Subscription, error) {
	return s.subRepo.GetActiveByUser(ctx, userID)
}

func (s *subscriptionService) setAutoRenewal(ctx context.Context, userID int64, enabled bool) (bool, error) {
	current, err := s.subRepo.GetActiveByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.subRepo.SetAutoRenewal(ctx, current.ID, enabled); err != nil {
		return false, err
	}
	return true, nil
}

func (s *subscriptionService) CancelAutoRenewal(ctx context.Context, userID int64) (bool, error) {
	return s.setAutoRenewal(ctx, userID, false)
}

func (s *subscriptionService) EnableAutoRenewal(ctx context.Context, userID int64) (bool, error) {
	return s.setAutoRenewal(ctx, userID, true)
}

func (s *subscriptionService) CheckAndExpire(ctx context.Context) (int64, error) {
	return s.subRepo.ExpireLapsed(ctx, time.Now())
}

// ProcessAutoRenewals sweeps subscriptions ending within the renewal window
// and charges each one. Items are isolated: one failure never stops the
// sweep, and an insufficient balance nudges the user to top up before the
// period actually ends.
func (s *subscriptionService) ProcessAutoRenewals(ctx context.Context) (*domain.RenewalReport, error) {
	cutoff := time.Now().Add(time.Duration(s.economy.RenewalWindowHours) * time.Hour)
	due, err := s.subRepo.ListDueForRenewal(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	price := s.economy.SubscriptionPriceCoins
	report := &domain.RenewalReport{}
	for _, sub := range due {
		user, err := s.userRepo.GetByID(ctx, sub.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Skipping renewal for unknown user", "subscription_id", sub.ID, "user_id", sub.UserID)
			report.Skipped++
			continue
		}
		if err != nil {
			logger.Error("Renewal user lookup failed", "subscription_id", sub.ID, "user_id", sub.UserID, "error", err)
			report.Failed++
			continue
		}

		_, newEnd, err := s.subRepo.Extend(ctx, sub.ID, sub.UserID, price, s.period())
		if err != nil {
			var insufficientErr *domain.InsufficientFundsError
			switch {
			case errors.As(err, &insufficientErr):
				report.Failed++
				logger.Info("Renewal failed on balance", "subscription_id", sub.ID, "user_id", sub.UserID,
					"required", insufficientErr.Required, "current", insufficientErr.Current)
				s.noteSvc.Notify(ctx, sub.UserID, "Renewal failed",
					fmt.Sprintf("Your subscription renewal needs %d coins but your balance is %d. Top up to keep your access.",
						insufficientErr.Required, insufficientErr.Current),
					map[string]string{"type": "RENEWAL_FAILED", "subscription_id": fmt.Sprintf("%d", sub.ID)})
				if emailErr := s.emailSvc.SendLowBalanceNotice(ctx, user.Email, user.Name, insufficientErr.Required, insufficientErr.Current); emailErr != nil {
					logger.Warn("Low balance email failed", "user_id", sub.UserID, "error", emailErr)
				}
			case errors.Is(err, domain.ErrNoActiveSubscription), errors.Is(err, domain.ErrNotFound):
				// Expired or cancelled between the listing and the charge.
				report.Skipped++
			default:
				report.Failed++
				logger.Error("Renewal failed", "subscription_id", sub.ID, "user_id", sub.UserID, "error", err)
			}
			continue
		}

		report.Renewed++
		s.noteSvc.Notify(ctx, sub.UserID, "Subscription renewed",
			fmt.Sprintf("Your subscription was renewed for %d coins and now runs until %s", price, newEnd.Format("2006-01-02")),
			map[string]string{"type": "SUBSCRIPTION_RENEWED", "subscription_id": fmt.Sprintf("%d", sub.ID)})
	}

	return report, nil
}
