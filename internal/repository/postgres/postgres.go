package postgres

import (
	"database/sql"
	"errors"

	"coinmarket-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AccountRepository
	repository.LedgerRepository
	repository.OrderRepository
	repository.PromoRepository
	repository.EntitlementRepository
	repository.ProductRepository
	repository.UserRepository
	repository.SubscriptionRepository
	repository.CreatorRepository
	repository.ReferralRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		AccountRepository:      NewAccountRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		OrderRepository:        NewOrderRepository(db),
		PromoRepository:        NewPromoRepository(db),
		EntitlementRepository:  NewEntitlementRepository(db),
		ProductRepository:      NewProductRepository(db),
		UserRepository:         NewUserRepository(db),
		SubscriptionRepository: NewSubscriptionRepository(db),
		CreatorRepository:      NewCreatorRepository(db),
		ReferralRepository:     NewReferralRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// isUniqueViolation reports whether err is a postgres unique-index violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
