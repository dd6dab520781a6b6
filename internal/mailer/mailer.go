// Package mailer renders localized transactional email and delivers it
// over SMTP behind a circuit breaker.
package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"taglayer/internal/config"
	"taglayer/internal/logging"

	"github.com/sony/gobreaker"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultLocale is used when a user has no locale or no translation
// exists for theirs.
const DefaultLocale = "en"

// Mailer delivers templated email. Delivery failures trip a circuit
// breaker so a dead SMTP relay cannot pile up goroutines.
type Mailer struct {
	cfg       config.SMTPConfig
	breaker   *gobreaker.CircuitBreaker
	templates *template.Template
}

// New parses the embedded templates and configures the breaker.
func New(cfg config.SMTPConfig) (*Mailer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &Mailer{cfg: cfg, breaker: breaker, templates: templates}, nil
}

// Send renders the named template in the given locale and delivers it.
func (m *Mailer) Send(to, subject, templateName, locale string, data map[string]any) error {
	body, err := m.render(templateName, locale, data)
	if err != nil {
		return err
	}

	if !m.cfg.Enabled {
		logging.Logger.WithFields(map[string]any{
			"to":       to,
			"template": templateName,
		}).Debug("email delivery disabled, skipping send")
		return nil
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	_, err = m.breaker.Execute(func() (interface{}, error) {
		auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
		return nil, smtp.SendMail(m.cfg.Addr(), auth, m.cfg.From, []string{to}, message)
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendAsync delivers on a goroutine so the request path never waits on
// the SMTP relay. Failures are logged, not returned.
func (m *Mailer) SendAsync(to, subject, templateName, locale string, data map[string]any) {
	go func() {
		if err := m.Send(to, subject, templateName, locale, data); err != nil {
			logging.Logger.WithFields(map[string]any{
				"to":       to,
				"template": templateName,
			}).Errorf("email delivery failed: %v", err)
		}
	}()
}

// render looks up "<name>.<locale>.html", falling back to the default
// locale when the translation is missing.
func (m *Mailer) render(name, locale string, data map[string]any) (string, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	tmpl := m.templates.Lookup(name + "." + locale + ".html")
	if tmpl == nil {
		tmpl = m.templates.Lookup(name + "." + DefaultLocale + ".html")
	}
	if tmpl == nil {
		return "", fmt.Errorf("unknown email template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template %q: %w", name, err)
	}
	return buf.String(), nil
}
