// File: internal/services/mail/console_provider.go
package mail

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ConsoleProvider writes the verification link to the console instead of
// sending mail. Used in development when no RESEND_API_KEY is configured.
type ConsoleProvider struct {
	out io.Writer
}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{out: os.Stdout}
}

func (p *ConsoleProvider) SendVerificationEmail(_ context.Context, toAddress, username, verificationLink string) error {
	fmt.Fprintln(p.out, "============================================================")
	fmt.Fprintln(p.out, "EMAIL VERIFICATION")
	fmt.Fprintln(p.out, "============================================================")
	fmt.Fprintf(p.out, "To: %s\n", toAddress)
	fmt.Fprintf(p.out, "Hello %s, verify your account:\n", username)
	fmt.Fprintf(p.out, "  %s\n", verificationLink)
	fmt.Fprintln(p.out, "============================================================")
	return nil
}
