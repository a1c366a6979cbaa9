// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/notify"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

// ExportFileName is the download name for format.
func ExportFileName(format types.ExportFormat) string {
	return "citations." + string(format)
}

// Export downloads the backend's export for format into the download
// directory as citations.<format> and returns the file path. The payload is
// written as received. A failed download leaves no file behind.
func (c *Controller) Export(ctx context.Context, format types.ExportFormat) (string, error) {
	label := strings.ToUpper(string(format))
	path, err := c.download(ctx, format)
	if err != nil {
		c.logger.Error("export failed", "format", format, "error", err)
		c.notify(notify.Error, messages.ExportFailed, label)
		return "", err
	}

	c.logger.Info("export written", "format", format, "path", path)
	c.notify(notify.Success, messages.Exported, label)
	return path, nil
}

func (c *Controller) download(ctx context.Context, format types.ExportFormat) (string, error) {
	if err := os.MkdirAll(c.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.downloadDir, ".citations-*.part")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := c.api.Export(ctx, format, tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}

	path := filepath.Join(c.downloadDir, ExportFileName(format))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("saving export: %w", err)
	}
	return path, nil
}
