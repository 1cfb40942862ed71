// Package contact validates the contact form and hands the message to the
// user's mail client, falling back to the clipboard.
package contact

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("invalid contact form")

// MinMessageLength is the minimum trimmed message length in characters.
const MinMessageLength = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form is what the visitor typed.
type Form struct {
	Name    string
	Email   string
	Message string
}

// ValidationError maps field names ("name", "email", "message") to a
// human-readable problem.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = e.Fields[k]
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Validate checks f. It returns nil or a *ValidationError.
func Validate(f Form) error {
	fields := map[string]string{}

	if strings.TrimSpace(f.Name) == "" {
		fields["name"] = "Name is required"
	}

	switch {
	case strings.TrimSpace(f.Email) == "":
		fields["email"] = "Email is required"
	case !emailPattern.MatchString(f.Email):
		fields["email"] = "Invalid email format"
	}

	msg := strings.TrimSpace(f.Message)
	switch {
	case msg == "":
		fields["message"] = "Message is required"
	case utf8.RuneCountInString(msg) < MinMessageLength:
		fields["message"] = fmt.Sprintf("Message must be at least %d characters", MinMessageLength)
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// FieldErrors returns the per-field messages of err, or nil.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// Message is a prepared email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Prepare builds the outgoing message addressed to to.
func Prepare(to string, f Form) Message {
	return Message{
		To:      to,
		Subject: "Contact from " + f.Name,
		Body:    fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", f.Name, f.Email, f.Message),
	}
}

// MailtoURL returns the mailto: link with subject and body escaped the way
// browsers' encodeURIComponent does.
func (m Message) MailtoURL() string {
	return "mailto:" + m.To + "?subject=" + encodeURIComponent(m.Subject) + "&body=" + encodeURIComponent(m.Body)
}

// Fallback is the plain text copied when no mail client opens.
func (m Message) Fallback() string {
	return fmt.Sprintf("To: %s\nSubject: %s\n\n%s", m.To, m.Subject, m.Body)
}

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
// url.QueryEscape is close but turns spaces into '+' and escapes !*'().
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	return strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	).Replace(escaped)
}
