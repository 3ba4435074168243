package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractClientIP resolves the originating client address, trusting proxy
// headers before the direct connection: X-Forwarded-For (first hop), then
// X-Real-IP, then RemoteAddr. Anything unparseable falls back to loopback.
func ExtractClientIP(c *gin.Context) string {
	candidates := []string{
		firstForwardedHop(c.GetHeader("X-Forwarded-For")),
		c.GetHeader("X-Real-IP"),
		hostPart(c.Request.RemoteAddr),
	}

	for _, ip := range candidates {
		if net.ParseIP(ip) != nil {
			return ip
		}
	}
	return "127.0.0.1"
}

// firstForwardedHop takes the leftmost entry of an X-Forwarded-For chain
// ("client, proxy1, proxy2"), which is the original client.
func firstForwardedHop(xff string) string {
	if xff == "" {
		return ""
	}
	hop, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(hop)
}

// hostPart strips the port from "ip:port" / "[ipv6]:port"; a bare value
// without a port is returned as-is.
func hostPart(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
