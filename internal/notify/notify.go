// Package notify delivers reminder digests to configured channels.
package notify

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/zulandar/habitline/internal/config"
)

// Digest summarizes one day's tracker status for delivery.
type Digest struct {
	Date      time.Time
	Due       []string // names of trackers due on Date
	Remaining []string // due trackers not yet completed
}

// Summary renders the digest as a single human-readable line.
func (d Digest) Summary() string {
	date := d.Date.Format("Mon Jan 2")
	if len(d.Due) == 0 {
		return fmt.Sprintf("%s: no trackers due today", date)
	}
	if len(d.Remaining) == 0 {
		return fmt.Sprintf("%s: all %d trackers done — nice work", date, len(d.Due))
	}
	return fmt.Sprintf("%s: %d of %d trackers still to do — %s",
		date, len(d.Remaining), len(d.Due), strings.Join(d.Remaining, ", "))
}

// Notifier is the interface reminder delivery backends implement.
type Notifier interface {
	// Send delivers the digest. Errors are reported to the caller, which
	// treats delivery as best-effort.
	Send(ctx context.Context, d Digest) error

	// Name identifies the backend in logs.
	Name() string
}

// FromConfig builds the notifier set the reminder config enables.
func FromConfig(cfg *config.ReminderConfig) []Notifier {
	var ns []Notifier
	if cfg.Command != "" {
		ns = append(ns, &CommandNotifier{Command: cfg.Command})
	}
	if cfg.Slack.Token != "" {
		ns = append(ns, NewSlackNotifier(cfg.Slack.Token, cfg.Slack.Channel))
	}
	if cfg.Discord.Token != "" {
		n, err := NewDiscordNotifier(cfg.Discord.Token, cfg.Discord.Channel)
		if err != nil {
			log.Printf("notify: discord disabled: %v", err)
		} else {
			ns = append(ns, n)
		}
	}
	return ns
}

// CommandNotifier runs a shell command template for each digest,
// e.g. "notify-send 'Habitline' '{{.Summary}}'".
type CommandNotifier struct {
	Command string
}

// Name identifies the backend.
func (n *CommandNotifier) Name() string { return "command" }

// Send substitutes digest values into the template and runs it via sh -c.
func (n *CommandNotifier) Send(ctx context.Context, d Digest) error {
	cmdStr := templateDigest(n.Command, d)
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdStr)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("notify: command failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// templateDigest replaces placeholders in the command template with digest values.
func templateDigest(command string, d Digest) string {
	r := strings.NewReplacer(
		"{{.Summary}}", d.Summary(),
		"{{.Date}}", d.Date.Format("2006-01-02"),
		"{{.Count}}", strconv.Itoa(len(d.Remaining)),
		"{{.Due}}", strconv.Itoa(len(d.Due)),
	)
	return r.Replace(command)
}
