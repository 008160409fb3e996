package service

import (
	"context"
	"fmt"

	"coinmarket-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendLowBalanceNotice(ctx context.Context, email, name string, requiredCoins, currentCoins int64) error {
	subject := "Your subscription could not be renewed"
	body := fmt.Sprintf("Hello %s,\n\nWe could not renew your subscription: it costs %d coins and your balance is %d coins.\nTop up your balance to keep your access after the current period ends.\n\nBest regards,\nThe Marketplace Team", name, requiredCoins, currentCoins)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendPurchaseReceipt(ctx context.Context, email, name, orderRef string, totalCoins int64) error {
	subject := "Your purchase receipt"
	body := fmt.Sprintf("Hello %s,\n\nThanks for your purchase! Order %s settled for %d coins.\n\nBest regards,\nThe Marketplace Team", name, orderRef, totalCoins)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendPayoutStatusNotice(ctx context.Context, email, name, payoutRef string, status domain.PayoutStatus) error {
	subject := fmt.Sprintf("Payout %s update", payoutRef)
	body := fmt.Sprintf("Hello %s,\n\nYour payout request %s is now %s.\n\nBest regards,\nThe Marketplace Team", name, payoutRef, status)
	return s.send(email, name, subject, body)
}
