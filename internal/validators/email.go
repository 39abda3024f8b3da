package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// Resolver is the subset of *net.Resolver used for domain checks.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomain accepts an address when its domain has an MX record or,
// failing that, any A/AAAA record.
type EmailDomain struct {
	resolver Resolver
	timeout  time.Duration
}

func NewEmailDomain(resolver Resolver, timeout time.Duration) *EmailDomain {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &EmailDomain{resolver: resolver, timeout: timeout}
}

func (v *EmailDomain) Valid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	if mx, err := v.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := v.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
