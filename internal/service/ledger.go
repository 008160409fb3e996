package service

import (
	"context"
	"errors"

	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

func (s *ledgerService) Credit(ctx context.Context, userID, amount int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, errors.New("credit amount must be positive")
	}
	return s.ledgerRepo.Credit(ctx, userID, amount, kind, description, corr)
}

func (s *ledgerService) Debit(ctx context.Context, userID, amount int64, kind domain.EntryKind, description string, corr domain.Correlation) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, errors.New("debit amount must be positive")
	}
	return s.ledgerRepo.Debit(ctx, userID, amount, kind, description, corr)
}

func (s *ledgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return s.ledgerRepo.GetBalance(ctx, userID)
}

func (s *ledgerService) GetEntries(ctx context.Context, userID int64, page, pageSize int32) ([]domain.LedgerEntry, int64, error) {
	return s.ledgerRepo.ListEntries(ctx, userID, page, pageSize)
}
