package concert

import (
	"fmt"
	"strings"
	"time"
)

// Logger takes a message followed by slog style key value pairs, matching
// the structured loggers the application injects.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds the auth options consumed by the token service and the
// identity middleware.
type Config interface {
	GetSigningKey() string
	GetTokenLifetime() time.Duration
	GetIssuer() string
	GetCognitoRegion() string
	GetCognitoUserPoolID() string
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Println(logLine("[ERR] CONCERT", msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Println(logLine("[INF] CONCERT", msg, args))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Println(logLine("[DBG] CONCERT", msg, args))
}

// logLine renders a message and its key value pairs as "msg k=v k=v"; a
// dangling value is appended as-is.
func logLine(prefix, msg string, args []any) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte(' ')
	b.WriteString(msg)

	i := 0
	for ; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if i < len(args) {
		fmt.Fprintf(&b, " %v", args[i])
	}

	return b.String()
}
