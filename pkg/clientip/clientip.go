package clientip

import (
	"net"
	"net/http"
	"strings"
)

var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client address, preferring proxy headers.
func GetIP(r *http.Request) string {
	for _, name := range proxyHeaders {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		if name == "X-Forwarded-For" {
			value, _, _ = strings.Cut(value, ",")
		}
		if ip := normalize(value); ip != "" {
			return ip
		}
	}
	return RemoteIP(r)
}

// RemoteIP returns the address of the connection peer without the port.
// When RemoteAddr cannot be parsed it is returned unchanged.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
