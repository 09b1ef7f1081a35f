package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/Gautam3767/product-catalog-backend/config"
	"github.com/Gautam3767/product-catalog-backend/models"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestMailNotifier_SendsOneMessage(t *testing.T) {
	d := &fakeDialer{}
	n := NewMailNotifier(d, "site@example.com", "sales@example.com", nullLogger())

	c := contactAt(models.StatusNew, models.ServiceCloudServices, false, time.Now().UTC())
	c.Message = "<script>alert(1)</script>"
	require.NoError(t, n.NotifyNewContact(context.Background(), c))

	require.Len(t, d.sent, 1)
	m := d.sent[0]
	assert.Equal(t, []string{"sales@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"dana@example.com"}, m.GetHeader("Reply-To"))
	assert.Equal(t, []string{"[Cloud Services] Quote"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>", "message body is escaped")
}

func TestMailNotifier_WrapsSendError(t *testing.T) {
	boom := errors.New("connection refused")
	n := NewMailNotifier(&fakeDialer{err: boom}, "a@example.com", "b@example.com", nullLogger())

	err := n.NotifyNewContact(context.Background(), contactAt(models.StatusNew, models.ServiceOther, false, time.Now().UTC()))
	assert.ErrorIs(t, err, boom)
}

func TestNewNotifier_DisabledWithoutSMTP(t *testing.T) {
	n := NewNotifier(config.MailConfig{}, nullLogger())
	assert.IsType(t, NopNotifier{}, n)

	n = NewNotifier(config.MailConfig{Host: "smtp.example.com", Port: 587, From: "a@example.com", NotifyEmail: "b@example.com"}, nullLogger())
	assert.IsType(t, &MailNotifier{}, n)
}
