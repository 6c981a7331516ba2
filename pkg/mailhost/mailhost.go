// Package mailhost maps e-mail domains to the IMAP hosts that serve them.
package mailhost

import (
	"sort"
	"strings"
)

var builtin = map[string][]string{
	"imap.yandex.ru":        {"yandex.ru"},
	"imap.mail.ru":          {"mail.ru", "bk.ru", "list.ru", "inbox.ru", "mail.ua"},
	"imap.rambler.ru":       {"rambler.ru", "lenta.ru", "autorambler.ru", "myrambler.ru", "ro.ru", "rambler.ua"},
	"imap.gmail.com":        {"gmail.com"},
	"imap.mail.yahoo.com":   {"yahoo.com"},
	"imap-mail.outlook.com": {"outlook.com", "hotmail.com"},
	"imap.aol.com":          {"aol.com"},
}

// Resolver looks up IMAP hosts by e-mail domain. It is read-only after
// construction and safe for concurrent use.
type Resolver struct {
	hosts map[string]string
}

// NewResolver returns a Resolver over the built-in table plus extra, which
// maps IMAP host to the domains it serves. A domain keeps the first host it
// was mapped to: built-in entries win over extra ones, and extra hosts are
// merged in sorted order.
func NewResolver(extra map[string][]string) *Resolver {
	r := &Resolver{hosts: map[string]string{}}
	for _, host := range sortedHosts(builtin) {
		r.add(host, builtin[host])
	}
	for _, host := range sortedHosts(extra) {
		r.add(host, extra[host])
	}
	return r
}

func sortedHosts(table map[string][]string) []string {
	hosts := make([]string, 0, len(table))
	for host := range table {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

func (r *Resolver) add(host string, domains []string) {
	for _, d := range domains {
		d = normalize(d)
		if _, ok := r.hosts[d]; ok {
			continue
		}
		r.hosts[d] = host
	}
}

// Lookup returns the IMAP host for domain. The domain may be given as a
// full address.
func (r *Resolver) Lookup(domain string) (string, bool) {
	if r == nil {
		return "", false
	}
	host, ok := r.hosts[normalize(domain)]
	return host, ok
}

func normalize(domain string) string {
	if i := strings.LastIndexByte(domain, '@'); i >= 0 {
		domain = domain[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(domain))
}
