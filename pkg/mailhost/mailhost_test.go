package mailhost

import "testing"

func TestLookup(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		domain string
		want   string
		ok     bool
	}{
		{"gmail.com", "imap.gmail.com", true},
		{"bk.ru", "imap.mail.ru", true},
		{"HOTMAIL.com", "imap-mail.outlook.com", true},
		{"user@rambler.ua", "imap.rambler.ru", true},
		{"example.org", "", false},
	}

	for _, tt := range tests {
		got, ok := r.Lookup(tt.domain)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.domain, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLookupExtraHosts(t *testing.T) {
	r := NewResolver(map[string][]string{
		"imap.gmail.com":   {"googlemail.com"},
		"imap.example.org": {"example.org"},
	})

	if host, ok := r.Lookup("googlemail.com"); !ok || host != "imap.gmail.com" {
		t.Errorf("Lookup(googlemail.com) = (%q, %v)", host, ok)
	}
	if host, ok := r.Lookup("gmail.com"); !ok || host != "imap.gmail.com" {
		t.Errorf("built-in domain lost after merge: (%q, %v)", host, ok)
	}
	if host, ok := r.Lookup("example.org"); !ok || host != "imap.example.org" {
		t.Errorf("Lookup(example.org) = (%q, %v)", host, ok)
	}

	// Extra hosts do not leak into other resolvers.
	if _, ok := NewResolver(nil).Lookup("googlemail.com"); ok {
		t.Error("extra hosts modified the built-in table")
	}
}

func TestNilResolver(t *testing.T) {
	var r *Resolver
	if _, ok := r.Lookup("gmail.com"); ok {
		t.Error("nil resolver should not resolve")
	}
}

func TestLookupExtraHostsDeterministic(t *testing.T) {
	extra := map[string][]string{
		"imap.b.example": {"shared.example"},
		"imap.a.example": {"shared.example"},
		"imap.c.example": {"gmail.com", "c.example"},
	}

	for i := 0; i < 100; i++ {
		r := NewResolver(extra)
		if host, _ := r.Lookup("shared.example"); host != "imap.a.example" {
			t.Fatalf("run %d: Lookup(shared.example) = %q, want imap.a.example", i, host)
		}
		if host, _ := r.Lookup("gmail.com"); host != "imap.gmail.com" {
			t.Fatalf("run %d: Lookup(gmail.com) = %q, built-in host should win", i, host)
		}
		if host, _ := r.Lookup("c.example"); host != "imap.c.example" {
			t.Fatalf("run %d: Lookup(c.example) = %q, want imap.c.example", i, host)
		}
	}
}
