package contact

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// Field identifies a form input.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldMessage
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldMessage:
		return "message"
	}
	return "unknown"
}

// SubmitEvent is a form submission. Handlers call PreventDefault to keep the
// host from running its default action.
type SubmitEvent struct {
	Name, Email, Message string

	defaultPrevented bool
}

// PreventDefault suppresses the default action.
func (e *SubmitEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler suppressed the default action.
func (e *SubmitEvent) DefaultPrevented() bool { return e.defaultPrevented }

// MailHandler opens a mailto: URI in the user's mail client.
type MailHandler interface {
	Open(uri string) error
}

// MailHandlerFunc adapts a function to MailHandler.
type MailHandlerFunc func(uri string) error

func (f MailHandlerFunc) Open(uri string) error { return f(uri) }

// ErrNoOpener is returned on platforms without a known URI opener.
var ErrNoOpener = errors.New("no mail handler for this platform")

// SystemMailHandler opens URIs with the platform's default handler.
type SystemMailHandler struct{}

func (SystemMailHandler) Open(uri string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", uri)
	case "darwin":
		cmd = exec.Command("open", uri)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		return ErrNoOpener
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	// Reap the opener without blocking the frame.
	go func() { _ = cmd.Wait() }()
	return nil
}

// Form is the contact form state: three editable fields and the focused one.
type Form struct {
	Recipient string

	values  [fieldCount][]rune
	focus   Field
	handler MailHandler
	log     *zap.Logger
	last    string
}

// NewForm creates an empty form mailing recipient through handler.
func NewForm(recipient string, handler MailHandler, log *zap.Logger) *Form {
	if log == nil {
		log = zap.NewNop()
	}
	return &Form{Recipient: recipient, handler: handler, log: log}
}

// Value returns the text of a field.
func (f *Form) Value(field Field) string { return string(f.values[field]) }

// SetValue replaces the text of a field.
func (f *Form) SetValue(field Field, v string) { f.values[field] = []rune(v) }

// Focus returns the focused field.
func (f *Form) Focus() Field { return f.focus }

// FocusNext moves focus to the next field, wrapping around.
func (f *Form) FocusNext() { f.focus = (f.focus + 1) % fieldCount }

// SetFocus focuses a field.
func (f *Form) SetFocus(field Field) {
	if field >= 0 && field < fieldCount {
		f.focus = field
	}
}

// Type appends runes to the focused field. Newlines are only kept in the
// message.
func (f *Form) Type(runes ...rune) {
	for _, r := range runes {
		if r == '\n' && f.focus != FieldMessage {
			continue
		}
		f.values[f.focus] = append(f.values[f.focus], r)
	}
}

// Backspace deletes the last rune of the focused field.
func (f *Form) Backspace() {
	v := f.values[f.focus]
	if len(v) > 0 {
		f.values[f.focus] = v[:len(v)-1]
	}
}

// LastLink returns the link produced by the latest submission.
func (f *Form) LastLink() string { return f.last }

// Submit fires a submission with the current field values.
func (f *Form) Submit() (*SubmitEvent, error) {
	ev := &SubmitEvent{
		Name:    f.Value(FieldName),
		Email:   f.Value(FieldEmail),
		Message: f.Value(FieldMessage),
	}
	return ev, f.Handle(ev)
}

// Handle suppresses the default action of ev, composes the mail link and
// hands it to the mail handler.
func (f *Form) Handle(ev *SubmitEvent) error {
	ev.PreventDefault()
	f.last = Compose(f.Recipient, ev.Name, ev.Email, ev.Message)
	f.log.Info("contact form submitted", zap.String("recipient", f.Recipient), zap.String("sender", ev.Email))
	if f.handler == nil {
		return nil
	}
	if err := f.handler.Open(f.last); err != nil {
		return fmt.Errorf("open mail link: %w", err)
	}
	return nil
}
