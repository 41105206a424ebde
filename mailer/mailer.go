// Package mailer sends generated reports to prospect contacts over SMTP.
package mailer

import (
	"fmt"
	"io"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends report emails with PDF attachments.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New creates a Mailer from SMTP settings.
func New(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendReport emails one report PDF to a recipient.
func (m *Mailer) SendReport(to, subject, body, filename string, pdf []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send report email: %w", err)
	}
	return nil
}

// AttachmentName builds a filesystem-safe PDF filename from a pitcher's
// display name and report date.
func AttachmentName(pitcher, date string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		default:
			return -1
		}
	}, pitcher)
	return fmt.Sprintf("%s_Report_%s.pdf", safe, date)
}

// Subject builds the report email subject line.
func Subject(pitcher, date string) string {
	return fmt.Sprintf("Pitching Report: %s (%s)", pitcher, date)
}

// Body builds the plain-text email body.
func Body(pitcher, date string, totalPitches int) string {
	return fmt.Sprintf(
		"Attached is the pitching report for %s from %s (%d pitches tracked).\n",
		pitcher, date, totalPitches)
}
