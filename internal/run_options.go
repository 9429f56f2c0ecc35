package internal

import (
	"context"
	"log/slog"
	"net"
	"time"
)

const defaultAddress = ":8080"

// RunOption configures the server started by App.Run.
type RunOption func(*serverConfig)

// Address sets the listen address used when Run gets an empty one.
func Address(addr string) RunOption {
	return func(c *serverConfig) {
		if addr != "" {
			c.address = addr
		}
	}
}

// Listener serves on an already open listener instead of dialing an address.
func Listener(ln net.Listener) RunOption {
	return func(c *serverConfig) {
		c.listener = ln
	}
}

// Logger sets the logger for server lifecycle events.
func Logger(l *slog.Logger) RunOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds draining requests and running hooks. Defaults to 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *serverConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// ShutdownHook registers a function run after the server stops accepting
// requests, in registration order.
//
//	internal.ShutdownHook(logger.Flush())
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *serverConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithContext sets the context whose cancellation also triggers shutdown.
func WithContext(ctx context.Context) RunOption {
	return func(c *serverConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
