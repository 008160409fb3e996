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

	"github.com/google/uuid"
)

type checkoutService struct {
	accountRepo     repository.AccountRepository
	productRepo     repository.ProductRepository
	entitlementRepo repository.EntitlementRepository
	promoRepo       repository.PromoRepository
	orderRepo       repository.OrderRepository
	ledgerRepo      repository.LedgerRepository
	userRepo        repository.UserRepository
	referralRepo    repository.ReferralRepository
	commissionSvc   CommissionService
	noteSvc         NotificationService
	emailSvc        EmailService
	economy         config.EconomyConfig
}

func NewCheckoutService(
	accountRepo repository.AccountRepository,
	productRepo repository.ProductRepository,
	entitlementRepo repository.EntitlementRepository,
	promoRepo repository.PromoRepository,
	orderRepo repository.OrderRepository,
	ledgerRepo repository.LedgerRepository,
	userRepo repository.UserRepository,
	referralRepo repository.ReferralRepository,
	commissionSvc CommissionService,
	noteSvc NotificationService,
	emailSvc EmailService,
	economy config.EconomyConfig,
) CheckoutService {
	return &checkoutService{
		accountRepo:     accountRepo,
		productRepo:     productRepo,
		entitlementRepo: entitlementRepo,
		promoRepo:       promoRepo,
		orderRepo:       orderRepo,
		ledgerRepo:      ledgerRepo,
		userRepo:        userRepo,
		referralRepo:    referralRepo,
		commissionSvc:   commissionSvc,
		noteSvc:         noteSvc,
		emailSvc:        emailSvc,
		economy:         economy,
	}
}

// resolvePromo validates the code and computes the discount in coins. Fixed
// codes carry a legacy USD value converted at the configured rate.
func (s *checkoutService) resolvePromo(ctx context.Context, code string, subtotalCoins int64) (*domain.PromoCode, int64, error) {
	promo, err := s.promoRepo.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, 0, &domain.InvalidPromoCodeError{Code: code, Reason: domain.PromoFailInvalid}
	}
	if err != nil {
		return nil, 0, err
	}
	if promoErr := promo.Usable(time.Now()); promoErr != nil {
		return nil, 0, promoErr
	}

	var discount int64
	switch promo.DiscountType {
	case domain.DiscountTypePercentage:
		discount = domain.PercentShare(subtotalCoins, promo.Value)
	case domain.DiscountTypeFixed:
		discount = domain.CoinsFromUSDCents(promo.Value, s.economy.CoinsPerUSD)
	default:
		return nil, 0, &domain.InvalidPromoCodeError{Code: code, Reason: domain.PromoFailInvalid}
	}
	if discount > subtotalCoins {
		discount = subtotalCoins
	}
	return promo, discount, nil
}

func (s *checkoutService) PreviewDiscount(ctx context.Context, userID, subtotalCoins int64, promoCode string) (*DiscountQuote, error) {
	if promoCode == "" {
		return &DiscountQuote{}, nil
	}
	promo, discount, err := s.resolvePromo(ctx, promoCode, subtotalCoins)
	if err != nil {
		return nil, err
	}
	return &DiscountQuote{DiscountCoins: discount, PromoID: &promo.ID}, nil
}

func (s *checkoutService) Checkout(ctx context.Context, userID int64, productIDs []int64, promoCode string) (*CheckoutResult, error) {
	if len(productIDs) == 0 {
		return nil, errors.New("no products in checkout")
	}

	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(productIDs) {
		return nil, fmt.Errorf("%w: one or more products do not exist", domain.ErrNotFound)
	}

	for _, p := range products {
		owned, err := s.entitlementRepo.Exists(ctx, userID, p.ID)
		if err != nil {
			return nil, err
		}
		if owned {
			return nil, domain.ErrProductAccessExists
		}
	}

	var subtotalCents, subtotalCoins int64
	items := make([]domain.OrderItem, 0, len(products))
	for _, p := range products {
		cents := p.EffectivePriceUSDCents()
		coins := domain.CoinsFromUSDCents(cents, s.economy.CoinsPerUSD)
		subtotalCents += cents
		subtotalCoins += coins
		items = append(items, domain.OrderItem{
			ProductID:     p.ID,
			PriceCoins:    coins,
			PriceUSDCents: cents,
		})
	}

	order := &domain.Order{
		Ref:              uuid.NewString(),
		UserID:           userID,
		SubtotalCoins:    subtotalCoins,
		SubtotalUSDCents: subtotalCents,
		Status:           domain.OrderStatusPaid,
		Items:            items,
	}

	// Free items never touch the ledger; the promo path is skipped too since
	// there is nothing to discount.
	if subtotalCoins > 0 && promoCode != "" {
		promo, discount, err := s.resolvePromo(ctx, promoCode, subtotalCoins)
		if err != nil {
			return nil, err
		}
		order.DiscountCoins = discount
		order.PromoCodeID = &promo.ID
	}
	order.TotalCoins = subtotalCoins - order.DiscountCoins
	order.TotalUSDCents = domain.USDCentsFromCoins(order.TotalCoins, s.economy.CoinsPerUSD)

	entry, err := s.orderRepo.Settle(ctx, order)
	if err != nil {
		// The settlement re-checks the use cap under the row lock; stamp the
		// code back on so the caller sees which one lost the race.
		var promoErr *domain.InvalidPromoCodeError
		if errors.As(err, &promoErr) && promoErr.Code == "" {
			promoErr.Code = promoCode
		}
		return nil, err
	}

	newBalance := account.Balance
	if entry != nil {
		newBalance = entry.BalanceAfter
	}

	s.afterCheckout(ctx, order)

	return &CheckoutResult{
		Order:      order,
		CoinsSpent: order.TotalCoins,
		NewBalance: newBalance,
	}, nil
}

// afterCheckout runs the post-commit side channels: referral cascade,
// commission split per authored item, notification and receipt email. Each
// failure is logged and swallowed; the purchase is already committed.
func (s *checkoutService) afterCheckout(ctx context.Context, order *domain.Order) {
	if err := s.payReferralBonus(ctx, order); err != nil {
		logger.Error("Referral cascade failed", "order_id", order.ID, "error", err)
	}

	for _, item := range order.Items {
		if item.PriceCoins == 0 {
			continue
		}
		if _, err := s.commissionSvc.SettleSale(ctx, item.ProductID, order.ID, item.PriceCoins); err != nil {
			logger.Error("Commission split failed", "order_id", order.ID, "product_id", item.ProductID, "error", err)
		}
	}

	s.noteSvc.Notify(ctx, order.UserID, "Purchase complete",
		fmt.Sprintf("Your order for %d item(s) settled for %d coins", len(order.Items), order.TotalCoins),
		map[string]string{"type": "ORDER_PAID", "order_id": fmt.Sprintf("%d", order.ID)})

	if buyer, err := s.userRepo.GetByID(ctx, order.UserID); err == nil {
		if err := s.emailSvc.SendPurchaseReceipt(ctx, buyer.Email, buyer.Name, order.Ref, order.TotalCoins); err != nil {
			logger.Warn("Receipt email failed", "order_id", order.ID, "error", err)
		}
	}
}

// payReferralBonus credits the buyer's referrer a percentage of the coins
// spent. This is an independent mutation on a different account; the buyer's
// lock was already released when we get here.
func (s *checkoutService) payReferralBonus(ctx context.Context, order *domain.Order) error {
	if order.TotalCoins == 0 {
		return nil
	}
	buyer, err := s.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		return err
	}
	if buyer.ReferrerID == nil {
		return nil
	}

	bonus := domain.PercentShare(order.TotalCoins, s.economy.ReferralPercent)
	if bonus == 0 {
		return nil
	}

	desc := fmt.Sprintf("Referral bonus for order %s", order.Ref)
	if _, err := s.ledgerRepo.Credit(ctx, *buyer.ReferrerID, bonus, domain.EntryKindReferral, desc, domain.Correlation{OrderID: &order.ID}); err != nil {
		return err
	}
	return s.referralRepo.Create(ctx, &domain.ReferralBonus{
		ReferrerID:  *buyer.ReferrerID,
		ReferredID:  order.UserID,
		OrderID:     order.ID,
		AmountCoins: bonus,
	})
}

func (s *checkoutService) GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *checkoutService) ListOrders(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Order, int64, error) {
	return s.orderRepo.ListByUser(ctx, userID, page, pageSize)
}
