package validators

import (
	"context"
	"errors"
	"net"
	"testing"
)

type fakeResolver struct {
	mx  map[string]bool
	ips map[string]bool
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if f.mx[name] {
		return []*net.MX{{Host: "mail." + name, Pref: 10}}, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if f.ips[host] {
		return []net.IPAddr{{IP: net.IPv4(10, 0, 0, 1)}}, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomain_Valid(t *testing.T) {
	v := NewEmailDomain(fakeResolver{
		mx:  map[string]bool{"mail.test": true},
		ips: map[string]bool{"web.test": true},
	}, 0)

	cases := map[string]bool{
		"a@mail.test":    true,
		"a@web.test":     true,
		"a@nowhere.test": false,
		"no-at-sign":     false,
		"trailing@":      false,
	}
	for email, want := range cases {
		if got := v.Valid(email); got != want {
			t.Errorf("%s: got %v, want %v", email, got, want)
		}
	}
}
