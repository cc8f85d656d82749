//go:build !protogen

package policy

import (
	"log/slog"
	"time"
)

func NewAgentPolicyProvider(_ *slog.Logger, offsets []time.Duration, _ string) (Provider, error) {
	return NewStaticProvider(offsets), nil
}
