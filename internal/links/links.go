// Package links composes the external navigation targets: the affiliate
// purchase link, the newsletter subscription page and the contact mail
// handoff.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/browser"
	"github.com/ryanm101/biblioteca/internal/config"
	"github.com/ryanm101/biblioteca/internal/logging"
)

// ContactSubject is the subject line of contact messages.
const ContactSubject = "Contacto - La Biblioteca Gamer"

// Links holds the configured targets.
type Links struct {
	PurchaseURL   string
	NewsletterURL string
	ContactEmail  string
}

// FromConfig builds Links from configuration.
func FromConfig(cfg config.LinksConfig) Links {
	return Links{
		PurchaseURL:   cfg.PurchaseURL,
		NewsletterURL: cfg.NewsletterURL,
		ContactEmail:  cfg.ContactEmail,
	}
}

// Purchase returns the affiliate purchase link.
func (l Links) Purchase() string {
	return l.PurchaseURL
}

// Newsletter returns the subscription page.
func (l Links) Newsletter() string {
	return l.NewsletterURL
}

// ContactMailto composes a pre-filled mail-composition URL.
func (l Links) ContactMailto(name, email, message string) string {
	body := fmt.Sprintf("Nombre: %s\nEmail: %s\n\nMensaje:\n%s", name, email, message)
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", l.ContactEmail, encodeComponent(ContactSubject), encodeComponent(body))
}

// encodeComponent percent-encodes s for a URI component, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Opener hands a URL to the desktop environment.
type Opener func(target string) error

// Open is the default opener.
var Open Opener = func(target string) error {
	logging.Debug("opening external link", "url", target)
	if err := browser.OpenURL(target); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}
