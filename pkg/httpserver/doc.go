// Package httpserver wraps net/http with graceful shutdown and env-driven
// configuration for the portal gateway.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal
// arrives, then drains in-flight requests within ShutdownTimeout. Startup
// and shutdown failures are wrapped with the ErrStart and ErrShutdown
// sentinels for errors.Is checks.
//
// HealthHandler serves the unauthenticated probe endpoints in the same
// {"status":"UP"} shape the portal's monitoring expects.
package httpserver
