package push

import "context"

// Client defines an interface for delivering push notifications through
// the external gateway. This decouples the engine from the gateway's
// transport; delivery failures are always non-fatal to the caller.
type Client interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}
