package service

import (
	"context"
	"time"

	"coinmarket-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockLedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Credit(ctx context.Context, userID, amount int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, amount, kind, description, corr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepository) Debit(ctx context.Context, userID, amount int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, amount, kind, description, corr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLedgerRepository) ListEntries(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LedgerEntry, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int64), args.Error(2)
}
func (m *MockLedgerRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// MockOrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Settle(ctx context.Context, order *domain.Order) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Order, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

// MockPromoRepository
type MockPromoRepository struct {
	mock.Mock
}

func (m *MockPromoRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PromoCode), args.Error(1)
}

// MockEntitlementRepository
type MockEntitlementRepository struct {
	mock.Mock
}

func (m *MockEntitlementRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}
func (m *MockEntitlementRepository) Grant(ctx context.Context, access *domain.ProductAccess) error {
	args := m.Called(ctx, access)
	return args.Error(0)
}
func (m *MockEntitlementRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ProductAccess, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ProductAccess), args.Error(1)
}

// MockProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepository) ListPremium(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockSubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) GetActiveByUser(ctx context.Context, userID int64) (*domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}
func (m *MockSubscriptionRepository) Purchase(ctx context.Context, sub *domain.Subscription, price int64, premiumProductIDs []int64) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, sub, price, premiumProductIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockSubscriptionRepository) Extend(ctx context.Context, subID, userID, price int64, extendBy time.Duration) (*domain.LedgerEntry, time.Time, error) {
	args := m.Called(ctx, subID, userID, price, extendBy)
	if args.Get(0) == nil {
		return nil, args.Get(1).(time.Time), args.Error(2)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockSubscriptionRepository) SetAutoRenewal(ctx context.Context, subID int64, enabled bool) error {
	args := m.Called(ctx, subID, enabled)
	return args.Error(0)
}
func (m *MockSubscriptionRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockSubscriptionRepository) ListDueForRenewal(ctx context.Context, cutoff time.Time) ([]domain.Subscription, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

// MockCreatorRepository
type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) GetBalance(ctx context.Context, creatorID int64) (int64, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockCreatorRepository) SettleSale(ctx context.Context, creatorID, earnings, commission int64, orderID, productID int64, description string) (*domain.CreatorTransaction, error) {
	args := m.Called(ctx, creatorID, earnings, commission, orderID, productID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatorTransaction), args.Error(1)
}
func (m *MockCreatorRepository) ListTransactions(ctx context.Context, creatorID int64, page, pageSize int32) ([]domain.CreatorTransaction, int64, error) {
	args := m.Called(ctx, creatorID, page, pageSize)
	return args.Get(0).([]domain.CreatorTransaction), args.Get(1).(int64), args.Error(2)
}
func (m *MockCreatorRepository) CreatePayout(ctx context.Context, payout *domain.CreatorPayout) (*domain.CreatorTransaction, error) {
	args := m.Called(ctx, payout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatorTransaction), args.Error(1)
}
func (m *MockCreatorRepository) GetPayout(ctx context.Context, id int64) (*domain.CreatorPayout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatorPayout), args.Error(1)
}
func (m *MockCreatorRepository) CompletePayout(ctx context.Context, id int64, txHash string) (*domain.CreatorPayout, error) {
	args := m.Called(ctx, id, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatorPayout), args.Error(1)
}
func (m *MockCreatorRepository) RejectPayout(ctx context.Context, id int64) (*domain.CreatorPayout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatorPayout), args.Error(1)
}

// MockReferralRepository
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) Create(ctx context.Context, bonus *domain.ReferralBonus) error {
	args := m.Called(ctx, bonus)
	return args.Error(0)
}

// MockNotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepository) List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockCommissionService
type MockCommissionService struct {
	mock.Mock
}

func (m *MockCommissionService) SettleSale(ctx context.Context, productID, orderID, saleCoins int64) (*domain.CreatorTransaction, error) {
	args := m.Called(ctx, productID, orderID, saleCoins)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatorTransaction), args.Error(1)
}
func (m *MockCommissionService) GetCreatorBalance(ctx context.Context, creatorID int64) (int64, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockCommissionService) GetCreatorTransactions(ctx context.Context, creatorID int64, page, pageSize int32) ([]domain.CreatorTransaction, int64, error) {
	args := m.Called(ctx, creatorID, page, pageSize)
	return args.Get(0).([]domain.CreatorTransaction), args.Get(1).(int64), args.Error(2)
}
func (m *MockCommissionService) RequestPayout(ctx context.Context, creatorID, amountCoins int64, address, network string) (*domain.CreatorPayout, error) {
	args := m.Called(ctx, creatorID, amountCoins, address, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatorPayout), args.Error(1)
}
func (m *MockCommissionService) CompletePayout(ctx context.Context, payoutID int64, txHash string) (*domain.CreatorPayout, error) {
	args := m.Called(ctx, payoutID, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatorPayout), args.Error(1)
}
func (m *MockCommissionService) RejectPayout(ctx context.Context, payoutID int64) (*domain.CreatorPayout, error) {
	args := m.Called(ctx, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatorPayout), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID int64, title, message string, attrs map[string]string) {
	m.Called(ctx, userID, title, message, attrs)
}
func (m *MockNotificationService) GetNotifications(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendLowBalanceNotice(ctx context.Context, email, name string, requiredCoins, currentCoins int64) error {
	args := m.Called(ctx, email, name, requiredCoins, currentCoins)
	return args.Error(0)
}
func (m *MockEmailService) SendPurchaseReceipt(ctx context.Context, email, name, orderRef string, totalCoins int64) error {
	args := m.Called(ctx, email, name, orderRef, totalCoins)
	return args.Error(0)
}
func (m *MockEmailService) SendPayoutStatusNotice(ctx context.Context, email, name, payoutRef string, status domain.PayoutStatus) error {
	args := m.Called(ctx, email, name, payoutRef, status)
	return args.Error(0)
}
