package mail

import "context"

// Sender delivers a verification email. Delivery is best-effort: callers
// log failures but never fail the surrounding flow because of one.
type Sender interface {
	SendVerificationEmail(ctx context.Context, toAddress, username, verificationLink string) error
}
