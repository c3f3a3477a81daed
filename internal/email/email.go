// Package email provides email formatting and SMTP sending for lead
// notifications.
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/didzisbondars-dot/officebase/internal/lead"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// IsConfigured returns true if SMTP settings are present.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

// FormatLeadEmail builds a plain-text notification body for a new
// inquiry.
func FormatLeadEmail(l lead.Lead) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "New space inquiry for %s.\n\n", l.ProjectName)

	fmt.Fprintf(&buf, "Contact: %s <%s>\n", l.Name, l.Email)
	if l.Phone != "" {
		fmt.Fprintf(&buf, "Phone:   %s\n", l.Phone)
	}
	if l.Company != "" {
		fmt.Fprintf(&buf, "Company: %s\n", l.Company)
	}

	var needs []string
	if l.UnitSize != nil {
		needs = append(needs, fmt.Sprintf("%g sqm", *l.UnitSize))
	}
	if l.Budget != nil {
		needs = append(needs, fmt.Sprintf("budget $%g", *l.Budget))
	}
	if len(needs) > 0 {
		fmt.Fprintf(&buf, "Looking for: %s\n", strings.Join(needs, " | "))
	}

	if l.Message != "" {
		fmt.Fprintf(&buf, "\n%s\n", l.Message)
	}

	if !l.SubmittedAt.IsZero() {
		fmt.Fprintf(&buf, "\nSubmitted %s\n", l.SubmittedAt.Format("2006-01-02 15:04 MST"))
	}

	return buf.String()
}

// NotifyLead formats and sends a new-inquiry notification.
func NotifyLead(cfg SMTPConfig, to []string, l lead.Lead) error {
	subject := fmt.Sprintf("New inquiry: %s", l.ProjectName)
	return Send(cfg, to, subject, FormatLeadEmail(l))
}

// Send sends an email via SMTP.
// Supports both port 465 (implicit TLS) and port 587 (STARTTLS).
func Send(cfg SMTPConfig, to []string, subject, body string) error {
	if !cfg.IsConfigured() {
		return fmt.Errorf("SMTP not configured")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		cfg.From,
		strings.Join(to, ", "),
		subject,
		body,
	)

	addr := cfg.Host + ":" + cfg.Port

	if cfg.Port == "465" {
		return sendImplicitTLS(cfg, addr, to, msg)
	}
	return sendSTARTTLS(cfg, addr, to, msg)
}

// sendImplicitTLS connects over TLS directly (port 465/SMTPS).
func sendImplicitTLS(cfg SMTPConfig, addr string, to []string, msg string) (err error) {
	tlsCfg := &tls.Config{ServerName: cfg.Host}
	conn, err := tls.Dial("tcp", addr, tlsCfg)
	if err != nil {
		return fmt.Errorf("TLS dial: %w", err)
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer func() {
		if quitErr := c.Quit(); quitErr != nil && err == nil {
			err = fmt.Errorf("quit: %w", quitErr)
		}
	}()

	if cfg.User != "" {
		auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}

	return nil
}

// sendSTARTTLS connects plain then upgrades to TLS (port 587).
func sendSTARTTLS(cfg SMTPConfig, addr string, to []string, msg string) error {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, cfg.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
