package services

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/Gautam3767/product-catalog-backend/config"
	"github.com/Gautam3767/product-catalog-backend/models"
)

// Notifier tells the sales inbox about a new contact submission.
type Notifier interface {
	NotifyNewContact(ctx context.Context, c models.Contact) error
}

// NopNotifier is used when SMTP is not configured.
type NopNotifier struct{}

func (NopNotifier) NotifyNewContact(context.Context, models.Contact) error { return nil }

// Dialer is the part of *gomail.Dialer the notifier uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier sends one HTML mail per submission over SMTP.
type MailNotifier struct {
	dialer Dialer
	from   string
	to     string
	log    logrus.FieldLogger
}

// NewNotifier returns a MailNotifier when cfg has SMTP settings and a NopNotifier otherwise.
func NewNotifier(cfg config.MailConfig, log logrus.FieldLogger) Notifier {
	if !cfg.Enabled() {
		log.Info("SMTP not configured, contact notifications disabled")
		return NopNotifier{}
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return NewMailNotifier(d, cfg.From, cfg.NotifyEmail, log)
}

func NewMailNotifier(d Dialer, from, to string, log logrus.FieldLogger) *MailNotifier {
	return &MailNotifier{dialer: d, from: from, to: to, log: log.WithField("component", "mail")}
}

var contactMailTmpl = template.Must(template.New("contact").Parse(`<h2>New contact submission</h2>
<table>
<tr><td><b>Name</b></td><td>{{.FullName}}</td></tr>
<tr><td><b>Email</b></td><td>{{.Email}}</td></tr>
<tr><td><b>Phone</b></td><td>{{.Phone}}</td></tr>
{{if .Company}}<tr><td><b>Company</b></td><td>{{.Company}}</td></tr>{{end}}
<tr><td><b>Service</b></td><td>{{.Service}}</td></tr>
<tr><td><b>Subject</b></td><td>{{.Subject}}</td></tr>
</table>
<p>{{.Message}}</p>
`))

func (n *MailNotifier) NotifyNewContact(ctx context.Context, c models.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body strings.Builder
	if err := contactMailTmpl.Execute(&body, c); err != nil {
		return fmt.Errorf("render contact mail: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Reply-To", c.Email)
	m.SetHeader("Subject", fmt.Sprintf("[%s] %s", c.Service, c.Subject))
	m.SetBody("text/html", body.String())

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	n.log.WithField("contact_id", c.ID.Hex()).Debug("Contact notification sent")
	return nil
}
