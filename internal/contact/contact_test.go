package contact

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMailto(t *testing.T, link string) (recipient, subject, body string) {
	t.Helper()
	rest, ok := strings.CutPrefix(link, "mailto:")
	require.True(t, ok, link)
	recipient, query, ok := strings.Cut(rest, "?")
	require.True(t, ok, link)
	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	return recipient, q.Get("subject"), q.Get("body")
}

func TestComposeDecodes(t *testing.T) {
	link := Compose("me@example.com", "Ann", "a@x.com", "Hi")
	recipient, subject, body := parseMailto(t, link)

	assert.Equal(t, "me@example.com", recipient)
	assert.Equal(t, "Message from Ann - Portfolio Contact", subject)
	assert.Equal(t, "Name: Ann\nEmail: a@x.com\n\nMessage:\nHi", body)
	assert.NotContains(t, link, "+", "spaces are %20")
	assert.Contains(t, link, "subject=Message%20from%20Ann%20-%20Portfolio%20Contact")
}

func TestComposeEscapesReservedCharacters(t *testing.T) {
	link := Compose("me@example.com", "A&B=C", "x+y@z.com", "50% off?\n#1")
	_, subject, body := parseMailto(t, link)

	assert.Equal(t, "Message from A&B=C - Portfolio Contact", subject)
	assert.Equal(t, "Name: A&B=C\nEmail: x+y@z.com\n\nMessage:\n50% off?\n#1", body)
}

func TestSubmitPreventsDefaultAndHandsOff(t *testing.T) {
	var opened []string
	f := NewForm("me@example.com", MailHandlerFunc(func(uri string) error {
		opened = append(opened, uri)
		return nil
	}), nil)
	f.SetValue(FieldName, "Ann")
	f.SetValue(FieldEmail, "a@x.com")
	f.SetValue(FieldMessage, "Hi")

	ev, err := f.Submit()
	require.NoError(t, err)
	assert.True(t, ev.DefaultPrevented())
	require.Len(t, opened, 1)
	assert.Equal(t, Compose("me@example.com", "Ann", "a@x.com", "Hi"), opened[0])
	assert.Equal(t, opened[0], f.LastLink())
}

func TestSubmitHandlerError(t *testing.T) {
	boom := errors.New("boom")
	f := NewForm("me@example.com", MailHandlerFunc(func(string) error { return boom }), nil)

	ev, err := f.Submit()
	require.ErrorIs(t, err, boom)
	assert.True(t, ev.DefaultPrevented(), "default stays suppressed on failure")
	assert.NotEmpty(t, f.LastLink())
}

func TestSubmitWithoutHandler(t *testing.T) {
	f := NewForm("me@example.com", nil, nil)
	ev, err := f.Submit()
	require.NoError(t, err)
	assert.True(t, ev.DefaultPrevented())
}

func TestFormEditing(t *testing.T) {
	f := NewForm("me@example.com", nil, nil)
	assert.Equal(t, FieldName, f.Focus())

	f.Type([]rune("Añn\n")...)
	assert.Equal(t, "Añn", f.Value(FieldName), "newline dropped outside the message")
	f.Backspace()
	assert.Equal(t, "Añ", f.Value(FieldName))

	f.FocusNext()
	f.FocusNext()
	assert.Equal(t, FieldMessage, f.Focus())
	f.Type([]rune("a\nb")...)
	assert.Equal(t, "a\nb", f.Value(FieldMessage))

	f.FocusNext()
	assert.Equal(t, FieldName, f.Focus())

	f.SetFocus(FieldEmail)
	f.Backspace()
	assert.Equal(t, "", f.Value(FieldEmail))
	f.SetFocus(Field(9))
	assert.Equal(t, FieldEmail, f.Focus())
	assert.Equal(t, "email", f.Focus().String())
}
