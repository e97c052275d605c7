// Package contact turns the contact form into a mailto: link and hands it to
// the host's mail client.
package contact

import (
	"fmt"
	"net/url"
	"strings"
)

// Subject returns the mail subject for a sender name.
func Subject(name string) string {
	return fmt.Sprintf("Message from %s - Portfolio Contact", name)
}

// Body returns the mail body.
func Body(name, email, message string) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", name, email, message)
}

// Compose builds the mailto: URI for a contact submission. Subject and body
// are percent-encoded with spaces as %20, which mail clients expect.
func Compose(recipient, name, email, message string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		recipient, encode(Subject(name)), encode(Body(name, email, message)))
}

func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
