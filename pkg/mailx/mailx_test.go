package mailx

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr bool
	}{
		{"ok", Message{To: "a@example.com", Subject: "Hi", Text: "body"}, false},
		{"html only", Message{To: "a@example.com", Subject: "Hi", HTML: "<p>body</p>"}, false},
		{"bad recipient", Message{To: "not an address", Subject: "Hi", Text: "body"}, true},
		{"empty subject", Message{To: "a@example.com", Text: "body"}, true},
		{"empty body", Message{To: "a@example.com", Subject: "Hi"}, true},
		{"header injection", Message{To: "a@example.com", Subject: "Hi\r\nBcc: x@y.z", Text: "body"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMessage)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, m.Send(ctx, Message{To: "a@example.com", Subject: "Hi", Text: "body"}))
		}()
	}
	wg.Wait()

	require.Len(t, m.Sent(), 10)
	require.Error(t, m.Send(ctx, Message{To: "bad"}))
	require.Len(t, m.Sent(), 10)
}

func TestNewSMTPMailer(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{})
	require.Error(t, err)

	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", From: "noreply@example.com"})
	require.NoError(t, err)
	require.Equal(t, "smtp.example.com:587", m.addr)
	require.Nil(t, m.auth)

	m, err = NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 2525, Username: "u", Password: "p", From: "noreply@example.com"})
	require.NoError(t, err)
	require.Equal(t, "smtp.example.com:2525", m.addr)
	require.NotNil(t, m.auth)
}

func TestSMTPMailerSendRejectsInvalid(t *testing.T) {
	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", From: "noreply@example.com"})
	require.NoError(t, err)

	err = m.Send(context.Background(), Message{To: "nobody"})
	require.ErrorIs(t, err, ErrInvalidMessage)
}
