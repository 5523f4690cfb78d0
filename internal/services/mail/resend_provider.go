// File: internal/services/mail/resend_provider.go
package mail

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ResendProvider delivers verification mail through the Resend HTTP API.
type ResendProvider struct {
	config *Config
	client *resty.Client
}

func NewResendProvider(config *Config) *ResendProvider {
	client := resty.New().
		SetBaseURL(config.APIURL).
		SetTimeout(config.Timeout).
		SetAuthToken(config.APIKey)

	return &ResendProvider{config: config, client: client}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (p *ResendProvider) SendVerificationEmail(ctx context.Context, toAddress, username, verificationLink string) error {
	req := resendRequest{
		From:    p.config.From,
		To:      []string{toAddress},
		Subject: "Pahiy AI - Verify your email",
		HTML:    verificationEmailBody(username, verificationLink),
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/emails")

	if err != nil {
		return &MailError{Type: ErrTypeNetwork, Message: "request failed", Cause: err}
	}
	if resp.IsError() {
		return &MailError{
			Type:    ErrTypeProvider,
			Message: fmt.Sprintf("resend returned status %d: %s", resp.StatusCode(), resp.String()),
		}
	}
	return nil
}

func verificationEmailBody(username, verificationLink string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #fff; background: #000; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #111; color: #fff; padding: 30px 20px; text-align: center; border-radius: 12px 12px 0 0;">
      <h1 style="margin: 0; font-size: 32px;">Pahiy AI</h1>
    </div>
    <div style="padding: 30px 20px; background: #0a0a0a;">
      <h2 style="color: #fff; margin-top: 0;">Hello %s!</h2>
      <p style="color: #e5e5e5;">Welcome to Pahiy AI. Click the button below to verify your account and start chatting:</p>
      <div style="text-align: center;">
        <a href="%s" style="display: inline-block; padding: 14px 32px; background: #fff; color: #000; text-decoration: none; border-radius: 8px; margin: 25px 0; font-weight: 600;">Verify my email</a>
      </div>
      <p style="color: #999; font-size: 13px; margin-top: 30px;">Or copy this link into your browser:</p>
      <p style="color: #888; word-break: break-all; font-size: 12px;">%s</p>
    </div>
    <div style="padding: 20px; background: #111; text-align: center; color: #666; font-size: 13px; border-radius: 0 0 12px 12px;">
      <p style="margin: 0;">If you did not create this account, you can ignore this email.</p>
    </div>
  </div>
</body>
</html>`, username, verificationLink, verificationLink)
}
