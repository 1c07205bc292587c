package logger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Attribute helpers use fixed keys so log queries stay stable across
// packages. Helpers taking optional values return an empty Attr, which
// slog drops, for zero input.

func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr { return slog.String("component", name) }

func Event(name string) slog.Attr { return slog.String("event", name) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }

// Latency is the time spent serving a request.
func Latency(d time.Duration) slog.Attr { return slog.Duration("latency", d) }

func Count(key string, n int64) slog.Attr { return slog.Int64(key, n) }

// UserID never logs the nil UUID.
func UserID(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("user_id", id.String())
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Method(method string) slog.Attr { return slog.String("method", method) }

func Path(path string) slog.Attr { return slog.String("path", path) }

func StatusCode(code int) slog.Attr { return slog.Int("status_code", code) }

func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}
