// Package netutil provides the host/address parsing and resolution helpers
// the actor runtime's neighbors (the gRPC/HTTP front doors, the cluster
// membership layer) rely on: hostname validation, host:port parsing, DNS
// resolution, and ephemeral-port discovery.
package netutil

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Host represents either a hostname ("localhost") or a literal IP address
// ("127.0.0.1", "::1").
type Host struct {
	hostname string
	ip       net.IP
}

// ParseHost parses a bare host string (no port) into a Host. It accepts a
// literal IPv4/IPv6 address or a hostname valid per RFC 1123.
func ParseHost(host string) (Host, error) {
	if ip := net.ParseIP(host); ip != nil {
		return Host{ip: ip}, nil
	}
	if isValidHostname(host) {
		return Host{hostname: host}, nil
	}
	return Host{}, fmt.Errorf("netutil: failed to parse host: %q", host)
}

// IsUnspecified reports whether the host is the unspecified IP address
// (0.0.0.0 / ::). Hostnames are never unspecified.
func (h Host) IsUnspecified() bool {
	return h.ip != nil && h.ip.IsUnspecified()
}

// String renders the host the way it was parsed: the literal IP or the
// original hostname text.
func (h Host) String() string {
	if h.ip != nil {
		return h.ip.String()
	}
	return h.hostname
}

// WithPort attaches a port to this host, producing a HostAddr.
func (h Host) WithPort(port uint16) HostAddr {
	return HostAddr{host: h, port: port}
}

// Resolve resolves the host to a single IP address. A literal IP resolves to
// itself; a hostname is resolved via the standard resolver, taking the
// first record returned.
func (h Host) Resolve(ctx context.Context) (net.IP, error) {
	if h.ip != nil {
		return h.ip, nil
	}

	addrs, err := net.DefaultResolver.LookupHost(ctx, h.hostname)
	if err != nil {
		return nil, fmt.Errorf("netutil: failed to resolve hostname %q: %w", h.hostname, err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("netutil: DNS resolution yielded no records for hostname %q", h.hostname)
	}

	ip := net.ParseIP(addrs[0])
	if ip == nil {
		return nil, fmt.Errorf("netutil: resolver returned unparsable address %q for hostname %q", addrs[0], h.hostname)
	}
	return ip, nil
}

// HostAddr is a `<host>:<port>` pair where host may be a hostname or an IP
// address (IPv6 addresses render bracketed).
type HostAddr struct {
	host Host
	port uint16
}

// ParseHostAddrWithDefaultPort parses "host", "host:port", "ip", "ip:port",
// or a bracketed "[ipv6]:port" address, falling back to defaultPort when no
// port is present. A bare literal IPv6 address with no brackets and no port
// is accepted.
func ParseHostAddrWithDefaultPort(addr string, defaultPort uint16) (HostAddr, error) {
	if host, portStr, err := net.SplitHostPort(addr); err == nil {
		port, perr := strconv.ParseUint(portStr, 10, 16)
		if perr != nil {
			return HostAddr{}, fmt.Errorf("netutil: failed to parse address %q: port is invalid", addr)
		}
		parsedHost, herr := ParseHost(host)
		if herr != nil {
			return HostAddr{}, fmt.Errorf("netutil: failed to parse address %q: hostname is invalid", addr)
		}
		return HostAddr{host: parsedHost, port: uint16(port)}, nil
	}

	// No ":" found, or the address is a bare (unbracketed) literal
	// address with no port -- net.SplitHostPort rejects "host" (no
	// colon) as well as bare IPv6 literals ("::1" has colons but isn't
	// "host:port" shaped).
	if ip := net.ParseIP(addr); ip != nil {
		return HostAddr{host: Host{ip: ip}, port: defaultPort}, nil
	}

	if !strings.Contains(addr, ":") {
		host, err := ParseHost(addr)
		if err != nil {
			return HostAddr{}, fmt.Errorf("netutil: failed to parse address %q: hostname is invalid", addr)
		}
		return HostAddr{host: host, port: defaultPort}, nil
	}

	return HostAddr{}, fmt.Errorf("netutil: failed to parse address %q", addr)
}

// ToSocketAddr resolves the host (if necessary) and returns a net.TCPAddr.
func (a HostAddr) ToSocketAddr(ctx context.Context) (*net.TCPAddr, error) {
	ip, err := a.host.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return &net.TCPAddr{IP: ip, Port: int(a.port)}, nil
}

// Port returns the address's port.
func (a HostAddr) Port() uint16 { return a.port }

// Host returns the address's host component.
func (a HostAddr) Host() Host { return a.host }

// String renders "host:port", bracketing IPv6 literals.
func (a HostAddr) String() string {
	if a.host.ip != nil && a.host.ip.To4() == nil {
		return fmt.Sprintf("[%s]:%d", a.host, a.port)
	}
	return fmt.Sprintf("%s:%d", a.host, a.port)
}

// FindAvailableTCPPort binds 127.0.0.1:0 and returns the OS-assigned port,
// then releases the listener. Best-effort discovery, not a reservation:
// another process may grab the port before the caller binds it.
func FindAvailableTCPPort() (uint16, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("netutil: failed to bind ephemeral port: %w", err)
	}
	defer l.Close()

	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("netutil: unexpected listener address type %T", l.Addr())
	}
	return uint16(addr.Port), nil
}

// BindEphemeralPort binds 127.0.0.1:0 and hands back both the live listener
// and the OS-assigned port, so a caller that actually wants to use the
// socket (rather than just discover a free port number) doesn't race
// another process for it between discovery and bind.
func BindEphemeralPort() (net.Listener, uint16, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, 0, fmt.Errorf("netutil: failed to bind ephemeral port: %w", err)
	}

	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		l.Close()
		return nil, 0, fmt.Errorf("netutil: unexpected listener address type %T", l.Addr())
	}
	return l, uint16(addr.Port), nil
}

// FindPrivateIP is declared but deliberately unimplemented: whether it
// should mean "first RFC 1918 address" or "first non-loopback address" has
// never been decided, and guessing would silently bake in a wrong default
// for callers relying on its name alone.
func FindPrivateIP() (net.IP, error) {
	panic("netutil: FindPrivateIP not implemented: semantics undecided")
}

// isValidHostname reports whether hostname is valid per RFC 1123: non-empty,
// at most 253 characters, composed only of alphanumerics plus '-' and '.',
// with non-empty dot-separated labels of at most 63 characters that do not
// start or end with '-'.
func isValidHostname(hostname string) bool {
	if hostname == "" || len(hostname) > 253 {
		return false
	}

	for _, r := range hostname {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlnum && r != '-' && r != '.' {
			return false
		}
	}

	for _, label := range strings.Split(hostname, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}

	return true
}
