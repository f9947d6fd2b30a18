// Package validators holds request checks that need more than a binding
// tag, such as DNS-backed email domain verification.
package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the domain part of an email address
// actually resolves, via MX records or a plain host lookup. Address syntax
// beyond the domain split is left to the binding layer.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
