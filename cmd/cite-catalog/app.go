// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/pdiddy/cite-catalog/internal/client"
	"github.com/pdiddy/cite-catalog/internal/controller"
	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/notify"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

// printNotifier shows notifications as lines on a writer. One-shot
// commands exit before any TTL would matter.
type printNotifier struct {
	mu     sync.Mutex
	w      io.Writer
	nextID uint64
}

func (p *printNotifier) Post(level notify.Level, message string) notify.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	prefix := ""
	if level == notify.Error {
		prefix = "error: "
	}
	fmt.Fprintf(p.w, "%s%s\n", prefix, message)
	return notify.Notification{ID: p.nextID, Level: level, Message: message, Posted: time.Now()}
}

// newController wires the REST client and a notifier into a controller
// configured from cfg.
func newController(c types.Config, notifier controller.Notifier, log *slog.Logger) *controller.Controller {
	api := client.New(c.Client, &http.Client{Timeout: c.Client.Timeout})
	return controller.New(controller.Options{
		API:         api,
		Notifier:    notifier,
		Localizer:   messages.New(c.UI.Locale),
		Logger:      log,
		DownloadDir: c.Client.DownloadDir,
	})
}
