package web

import (
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"strings"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/adminkit/cmd/web/handlers/common"
)

// accessPolicy restricts the admin UI to one host name and a set of client
// addresses. Empty fields allow everything.
type accessPolicy struct {
	host     string
	prefixes []netip.Prefix
}

// newAccessPolicy parses allow entries as single addresses or CIDR ranges.
// Entries that parse as neither are logged and skipped.
func newAccessPolicy(host string, allow []string) accessPolicy {
	p := accessPolicy{host: strings.ToLower(strings.TrimSpace(host))}
	for _, entry := range allow {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				slog.Warn("ignoring invalid ADMIN_ALLOW_ONLY entry", "entry", entry, "error", err)
				continue
			}
			p.prefixes = append(p.prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			slog.Warn("ignoring invalid ADMIN_ALLOW_ONLY entry", "entry", entry, "error", err)
			continue
		}
		addr = addr.Unmap()
		p.prefixes = append(p.prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return p
}

// ipExtractor decides how c.RealIP finds the client address. Without trusted
// proxies the TCP peer is the client and forwarding headers are ignored.
// Otherwise X-Forwarded-For is believed only for hops from the listed ranges;
// loopback and private peers get no implicit trust.
func ipExtractor(proxies []string) (echo.IPExtractor, error) {
	if len(proxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, entry := range proxies {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			addr, err := netip.ParseAddr(entry)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
			}
			entry = netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()).String()
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}

// hostAllowed compares the request host against the configured admin host.
// A configured host without a port matches any port.
func (p accessPolicy) hostAllowed(hostHeader string) bool {
	if p.host == "" {
		return true
	}
	hostHeader = strings.ToLower(strings.TrimSpace(hostHeader))
	if hostHeader == p.host {
		return true
	}
	if _, _, err := net.SplitHostPort(p.host); err == nil {
		return false
	}
	if h, _, err := net.SplitHostPort(hostHeader); err == nil {
		return h == p.host
	}
	return false
}

func (p accessPolicy) ipAllowed(ip string) bool {
	if len(p.prefixes) == 0 {
		return true
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// requestHost returns the host the client asked for, preferring the first
// X-Forwarded-Host entry.
func requestHost(c echo.Context) string {
	hostHeader := strings.TrimSpace(c.Request().Header.Get("X-Forwarded-Host"))
	if hostHeader == "" {
		hostHeader = strings.TrimSpace(c.Request().Host)
	}
	// If multiple forwarded hosts are provided, use the first.
	if idx := strings.Index(hostHeader, ","); idx >= 0 {
		hostHeader = strings.TrimSpace(hostHeader[:idx])
	}
	return hostHeader
}

// adminAccessMiddleware answers 403 to requests for another host or from an
// address outside the allow list.
func adminAccessMiddleware(p accessPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			host := requestHost(c)
			if !p.hostAllowed(host) {
				slog.Warn("admin access denied: host", "host", host, "remote_ip", c.RealIP())
				return common.ErrForbidden()
			}
			if ip := c.RealIP(); !p.ipAllowed(ip) {
				slog.Warn("admin access denied: address", "host", host, "remote_ip", ip)
				return common.ErrForbidden()
			}
			return next(c)
		}
	}
}
