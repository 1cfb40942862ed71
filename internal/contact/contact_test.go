package contact_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gYonder/folio-shell/internal/contact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		form contact.Form
		want map[string]string
	}{
		{
			name: "valid",
			form: contact.Form{Name: "Ada", Email: "ada@example.com", Message: "Hello there!"},
		},
		{
			name: "all empty",
			form: contact.Form{Name: "  ", Message: "   "},
			want: map[string]string{
				"name":    "Name is required",
				"email":   "Email is required",
				"message": "Message is required",
			},
		},
		{
			name: "bad email",
			form: contact.Form{Name: "Ada", Email: "ada@example", Message: "long enough message"},
			want: map[string]string{"email": "Invalid email format"},
		},
		{
			name: "email with spaces",
			form: contact.Form{Name: "Ada", Email: " ada@example.com", Message: "long enough message"},
			want: map[string]string{"email": "Invalid email format"},
		},
		{
			name: "short after trim",
			form: contact.Form{Name: "Ada", Email: "a@b.co", Message: "   short    "},
			want: map[string]string{"message": "Message must be at least 10 characters"},
		},
		{
			name: "exactly ten",
			form: contact.Form{Name: "Ada", Email: "a@b.co", Message: "0123456789"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := contact.Validate(tt.form)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, contact.ErrInvalid))
			assert.Equal(t, tt.want, contact.FieldErrors(err))
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := contact.Validate(contact.Form{})
	assert.Equal(t, "Email is required; Message is required; Name is required", err.Error())
}

func TestPrepare(t *testing.T) {
	m := contact.Prepare("owner@example.com", contact.Form{Name: "Ada L", Email: "ada@example.com", Message: "Hi & bye?"})

	assert.Equal(t, "Contact from Ada L", m.Subject)
	assert.Equal(t, "Name: Ada L\nEmail: ada@example.com\n\nMessage:\nHi & bye?", m.Body)
	assert.Equal(t,
		"mailto:owner@example.com?subject=Contact%20from%20Ada%20L&body=Name%3A%20Ada%20L%0AEmail%3A%20ada%40example.com%0A%0AMessage%3A%0AHi%20%26%20bye%3F",
		m.MailtoURL())
	assert.Equal(t, "To: owner@example.com\nSubject: Contact from Ada L\n\n"+m.Body, m.Fallback())
}

func TestMailto_KeepsUnreservedMarks(t *testing.T) {
	m := contact.Message{To: "o@x.io", Subject: "it's (really) fine!*~", Body: "a+b"}
	assert.True(t, strings.HasSuffix(m.MailtoURL(), "subject=it's%20(really)%20fine!*~&body=a%2Bb"))
}

type fakeOpener struct {
	err    error
	opened []string
}

func (f *fakeOpener) Open(url string) error {
	f.opened = append(f.opened, url)
	return f.err
}

type fakeClipboard struct {
	err  error
	text string
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestDeliver(t *testing.T) {
	m := contact.Prepare("owner@example.com", contact.Form{Name: "Ada", Email: "ada@example.com", Message: "Hello there!"})

	t.Run("opens mail client", func(t *testing.T) {
		op, cb := &fakeOpener{}, &fakeClipboard{}
		assert.Equal(t, contact.EmailOpened, contact.Deliver(m, op, cb))
		assert.Equal(t, []string{m.MailtoURL()}, op.opened)
		assert.Empty(t, cb.text)
	})

	t.Run("falls back to clipboard", func(t *testing.T) {
		op, cb := &fakeOpener{err: errors.New("no handler")}, &fakeClipboard{}
		assert.Equal(t, contact.Copied, contact.Deliver(m, op, cb))
		assert.Equal(t, m.Fallback(), cb.text)
	})

	t.Run("manual when both fail", func(t *testing.T) {
		op, cb := &fakeOpener{err: errors.New("no handler")}, &fakeClipboard{err: errors.New("no clipboard")}
		assert.Equal(t, contact.Manual, contact.Deliver(m, op, cb))
	})

	t.Run("nil capabilities", func(t *testing.T) {
		assert.Equal(t, contact.Manual, contact.Deliver(m, nil, nil))
	})
}
