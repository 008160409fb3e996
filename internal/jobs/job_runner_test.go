package jobs

import (
	"context"
	"testing"

	"coinmarket-backend/internal/config"
	"coinmarket-backend/internal/domain"
	"coinmarket-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

// recordingSubscriptionService captures the order in which the nightly jobs
// call into the subscription lifecycle.
type recordingSubscriptionService struct {
	calls []string
}

func (r *recordingSubscriptionService) Purchase(ctx context.Context, userID int64) (*service.SubscriptionPurchaseResult, error) {
	r.calls = append(r.calls, "Purchase")
	return nil, nil
}

func (r *recordingSubscriptionService) GetCurrent(ctx context.Context, userID int64) (*domain.Subscription, error) {
	r.calls = append(r.calls, "GetCurrent")
	return nil, domain.ErrNotFound
}

func (r *recordingSubscriptionService) CancelAutoRenewal(ctx context.Context, userID int64) (bool, error) {
	r.calls = append(r.calls, "CancelAutoRenewal")
	return false, nil
}

func (r *recordingSubscriptionService) EnableAutoRenewal(ctx context.Context, userID int64) (bool, error) {
	r.calls = append(r.calls, "EnableAutoRenewal")
	return false, nil
}

func (r *recordingSubscriptionService) CheckAndExpire(ctx context.Context) (int64, error) {
	r.calls = append(r.calls, "CheckAndExpire")
	return 0, nil
}

func (r *recordingSubscriptionService) ProcessAutoRenewals(ctx context.Context) (*domain.RenewalReport, error) {
	r.calls = append(r.calls, "ProcessAutoRenewals")
	return &domain.RenewalReport{}, nil
}

// A subscription that lapsed since the last sweep must be expired before the
// renewal sweep runs, otherwise it would be charged and extended instead.
func TestJobRunner_RunAllNightlyJobs_ExpiresBeforeRenewing(t *testing.T) {
	subs := &recordingSubscriptionService{}
	jr := NewJobRunner(nil, nil, &Services{Subscription: subs}, &config.Config{})

	jr.RunAllNightlyJobs()

	assert.Equal(t, []string{"CheckAndExpire", "ProcessAutoRenewals"}, subs.calls)
}
