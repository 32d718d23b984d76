package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
)

// VerifyToken checks a candidate token against the API before it is saved.
// Rejected tokens return domain.ErrAuthFailed; other failures are wrapped.
func VerifyToken(ctx context.Context, cfg *adapter.Config, token string, logger *slog.Logger) error {
	client, err := NewClientFromConfig(cfg, token, logger)
	if err != nil {
		return err
	}
	if err := client.ValidateToken(ctx); err != nil {
		if errors.Is(err, domain.ErrAuthFailed) {
			return err
		}
		return fmt.Errorf("could not verify token: %w", err)
	}
	return nil
}
