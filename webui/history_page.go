package webui

import (
	"context"
	"fmt"
	"io"

	"github.com/ralim/listcreation/history"
	"github.com/ralim/listcreation/webpart"
)

const historyPageSize = 50

// RenderHistory writes a table of the most recent list creation attempts
func (web *WebUI) RenderHistory(ctx context.Context, writer io.Writer) error {
	attempts, err := web.RecentAttempts(ctx)
	if err != nil {
		return err
	}
	if err := historyPageTemplate.Execute(writer, attempts); err != nil {
		return fmt.Errorf("%w - %v", webpart.ErrBadTemplate, err)
	}
	return nil
}

// RecentAttempts is empty when no history store is configured
func (web *WebUI) RecentAttempts(ctx context.Context) ([]*history.Attempt, error) {
	if web.history == nil {
		return []*history.Attempt{}, nil
	}
	attempts, err := web.history.Recent(ctx, historyPageSize)
	if err != nil {
		return nil, fmt.Errorf("couldn't load history - %w", err)
	}
	return attempts, nil
}
