package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// AWSSESEmailService sends order confirmation emails using AWS SES
type AWSSESEmailService struct {
	sesClient   *ses.Client
	fromAddress string
	logger      *slog.Logger
}

// NewAWSSESEmailService creates a new AWS SES email service
func NewAWSSESEmailService(region, fromAddress string, logger *slog.Logger) (*AWSSESEmailService, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESEmailService{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// SendOrderConfirmation sends an order confirmation email to the buyer
func (s *AWSSESEmailService) SendOrderConfirmation(ctx context.Context, toEmail, billingName, eventTitle, orderID string) error {
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #f8f9fa; padding: 20px; text-align: center; border-radius: 4px; }
        .content { padding: 20px 0; }
        .order { background-color: #e8f4e8; padding: 10px; border-left: 4px solid #28a745; margin: 10px 0; }
        .footer { color: #666; font-size: 12px; margin-top: 20px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Your Order Is Confirmed</h1>
        </div>
        <div class="content">
            <p>Hi %s,</p>
            <p>Thank you for your purchase. Your ticket for <strong>%s</strong> is confirmed.</p>
            <div class="order">
                <strong>Order reference:</strong> %s
            </div>
            <p>Please keep this email as proof of purchase. Your order reference will be required at the venue.</p>
        </div>
        <div class="footer">
            <p>This is an automated message. Please do not reply to this email.</p>
            <p>If you have any questions, please contact our support team.</p>
        </div>
    </div>
</body>
</html>
`, billingName, eventTitle, orderID)

	textBody := fmt.Sprintf(`Your Order Is Confirmed

Hi %s,

Thank you for your purchase. Your ticket for %s is confirmed.

Order reference: %s

Please keep this email as proof of purchase. Your order reference will be required at the venue.

This is an automated message. Please do not reply to this email.
If you have any questions, please contact our support team.
`, billingName, eventTitle, orderID)

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(fmt.Sprintf("Order confirmation: %s", eventTitle)),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send order confirmation via SES",
			slog.String("order_id", orderID),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("order confirmation email sent",
		slog.String("order_id", orderID),
		slog.String("message_id", *result.MessageId))

	return nil
}
