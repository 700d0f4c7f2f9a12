package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SenderInterface defines the contract for outbound notification mail.
type SenderInterface interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SESSender sends plain-text mail through Amazon SES. Used for role-request
// decision notifications; delivery failure is never fatal to the request
// that triggered it.
type SESSender struct {
	client *sesv2.Client
	from   string
}

// NewSESSender builds a sender from the default AWS credential chain.
func NewSESSender(ctx context.Context, from string) (*SESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("email.NewSESSender: load aws config: %w", err)
	}
	return &SESSender{client: sesv2.NewFromConfig(cfg), from: from}, nil
}

func (s *SESSender) Send(ctx context.Context, to, subject, body string) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("email.Send: %w", err)
	}
	return nil
}
