package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"pravaah/internal/config"
	"pravaah/internal/domain"
	"pravaah/internal/port"
)

// EmailAPI is the subset of the SES v2 client the notifier uses.
type EmailAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesNotifier struct {
	client      EmailAPI
	from        string
	reviewers   []string
	frontendURL string
}

// NewSESNotifier creates a ReviewNotifier that e-mails every configured
// reviewer through Amazon SES.
func NewSESNotifier(ctx context.Context, cfg *config.EmailConfig) (port.ReviewNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return NewSESNotifierWithClient(sesv2.NewFromConfig(awsCfg), cfg), nil
}

// NewSESNotifierWithClient is NewSESNotifier over an explicit client.
func NewSESNotifierWithClient(client EmailAPI, cfg *config.EmailConfig) port.ReviewNotifier {
	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	return &sesNotifier{
		client:      client,
		from:        from,
		reviewers:   cfg.Reviewers,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
	}
}

func (s *sesNotifier) NotifyQueued(ctx context.Context, entry domain.ReviewQueueEntry) error {
	if len(s.reviewers) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Review needed: %s", entry.Filename)
	reviewURL := s.frontendURL + "/review"
	textBody := fmt.Sprintf(
		"A document needs a human decision on its type.\n\nFile: %s\nAI guess: %s (%s)\n\nOpen the review queue: %s\n",
		entry.Filename, entry.AIGuess, entry.Confidence, reviewURL)
	htmlBody := buildQueuedHTML(entry, reviewURL)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: s.reviewers,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildQueuedHTML(entry domain.ReviewQueueEntry, reviewURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Document waiting for review</h2>
  <p>The classifier was not confident about this upload.</p>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">File</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">AI guess</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Confidence</td><td>%s</td></tr>
  </table>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Open review queue</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Pravaah - Document Processing</p>
</body>
</html>`,
		html.EscapeString(entry.Filename),
		html.EscapeString(string(entry.AIGuess)),
		html.EscapeString(entry.Confidence),
		html.EscapeString(reviewURL))
}
