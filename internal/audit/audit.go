// Package audit records administrative actions: project uploads, contact
// submissions and reads of the contact inbox.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"

	"github.com/filipexyz/folio/internal/db"
	"github.com/jackc/pgx/v5/pgtype"
)

// Actions recorded by the API.
const (
	ActionProjectCreate = "project.create"
	ActionContactSubmit = "contact.submit"
	ActionContactList   = "contact.list"
)

// Actors.
const (
	ActorAdmin   = "admin"
	ActorVisitor = "visitor"
)

// Store persists audit entries.
type Store interface {
	InsertAuditLog(ctx context.Context, arg db.InsertAuditLogParams) error
}

// Logger provides structured audit logging with dual-write to slog (sync) and Postgres (async).
type Logger struct {
	store  Store
	ch     chan entry
	done   chan struct{}
	mu     sync.Mutex // guards closed and sends on ch
	closed bool
	once   sync.Once
}

type entry struct {
	actor  string
	action string
	target string
	detail map[string]any
	ip     string
}

// New creates a new audit Logger. store may be nil to log to slog only.
// The buffer parameter controls the async channel size.
func New(store Store, buffer int) *Logger {
	if buffer <= 0 {
		buffer = 256
	}
	l := &Logger{
		store: store,
		ch:    make(chan entry, buffer),
		done:  make(chan struct{}),
	}
	go l.drain()
	return l
}

// Log records an action by actor on target. It writes to slog synchronously
// and to the store asynchronously. detail may be nil.
func (l *Logger) Log(ctx context.Context, actor, action, target string, detail map[string]any) {
	ip := ipFromContext(ctx)

	// Sync: always log to slog
	attrs := []any{
		slog.String("actor", actor),
		slog.String("action", action),
	}
	if target != "" {
		attrs = append(attrs, slog.String("target", target))
	}
	if ip != "" {
		attrs = append(attrs, slog.String("ip_address", ip))
	}
	if detail != nil {
		attrs = append(attrs, slog.Any("detail", detail))
	}
	slog.Info("audit", attrs...)

	e := entry{
		actor:  actor,
		action: action,
		target: target,
		detail: detail,
		ip:     ip,
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	select {
	case l.ch <- e:
	default:
		slog.Warn("audit log channel full, dropping entry", "action", action)
	}
}

// drain processes the async channel and inserts into the store.
func (l *Logger) drain() {
	defer close(l.done)
	for e := range l.ch {
		if l.store == nil {
			continue
		}
		if err := l.store.InsertAuditLog(context.Background(), e.params()); err != nil {
			slog.Error("audit log insert failed", "error", err, "action", e.action)
		}
	}
}

func (e entry) params() db.InsertAuditLogParams {
	p := db.InsertAuditLogParams{
		Actor:  e.actor,
		Action: e.action,
		Target: pgtype.Text{String: e.target, Valid: e.target != ""},
	}
	if e.detail != nil {
		data, err := json.Marshal(e.detail)
		if err != nil {
			slog.Warn("audit detail marshal failed", "error", err, "action", e.action)
		} else {
			p.Detail = data
		}
	}
	if e.ip != "" {
		if parsed, err := netip.ParseAddr(e.ip); err == nil {
			p.IpAddress = &parsed
		}
	}
	return p
}

// Close stops accepting entries and waits for queued ones to be written.
// Safe to call multiple times.
func (l *Logger) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		close(l.ch)
		l.mu.Unlock()
	})
	<-l.done
}

type ctxKey string

const ipKey ctxKey = "audit_ip"

// WithIP returns a context with the client IP address stored for audit logging.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey, ip)
}

// Middleware stores the client IP of every request for audit logging.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithIP(r.Context(), IPFromRequest(r))))
	})
}

// IPFromRequest extracts the client IP from an HTTP request.
// Uses X-Real-Ip / X-Forwarded-For if present, falls back to RemoteAddr.
// These headers can be spoofed; the result is informational only.
func IPFromRequest(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip != "" {
		return ip
	}
	ip = r.Header.Get("X-Forwarded-For")
	if ip != "" {
		if idx := strings.IndexByte(ip, ','); idx != -1 {
			ip = strings.TrimSpace(ip[:idx])
		}
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func ipFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ipKey).(string)
	return ip
}
