// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, session policy, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Sessions: Cookie naming and lifetime policy.
  - Routing: Well-known paths referenced outside their own handlers.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "inkstone"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Sessions

const (
	// SessionCookieName is the name of the cookie carrying the opaque session token.
	SessionCookieName = "inkstone_session"

	// SessionTTL is how long an idle session survives before the store evicts it.
	// Long-lived (30 days) to provide a good user experience.
	SessionTTL = 30 * 24 * time.Hour

	// SessionTokenLength is the byte length of the random session token.
	SessionTokenLength = 32
)

// # Routing

const (
	// LoginPath is where the login-required guard sends anonymous visitors.
	LoginPath = "/auth/login"

	// IndexPath is the post-login and post-mutation landing page.
	IndexPath = "/"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # Form Field Identifiers

const (
	FieldCSRFToken = "_csrf"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession = "auth:session:"
)
