// Package reminder computes and delivers daily tracker reminders.
package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/zulandar/habitline/internal/notify"
	"github.com/zulandar/habitline/internal/visibility"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Opts holds parameters for the reminder daemon.
type Opts struct {
	DB        *gorm.DB
	Cron      string // 5-field cron expression
	Notifiers []notify.Notifier
	Now       func() time.Time // injectable clock; time.Now if nil
}

// BuildDigest computes the day's digest: trackers due on the clock's current
// day and the subset not yet completed.
func BuildDigest(db *gorm.DB, now time.Time) (notify.Digest, error) {
	snap, err := visibility.Load(db, now)
	if err != nil {
		return notify.Digest{}, fmt.Errorf("reminder: load snapshot: %w", err)
	}

	// The pinned section holds pinned trackers exclusively, so a single pass
	// over every section counts each due tracker exactly once.
	d := notify.Digest{Date: now}
	for _, section := range visibility.Visible(snap, visibility.Options{Date: now, Filter: visibility.FilterAll}) {
		for _, tr := range section.Trackers {
			d.Due = append(d.Due, tr.Name)
			if !snap.Completed[tr.ID] {
				d.Remaining = append(d.Remaining, tr.Name)
			}
		}
	}
	return d, nil
}

// Fire builds today's digest and delivers it to every notifier. Delivery is
// best-effort: failures are logged and the remaining notifiers still run.
func Fire(ctx context.Context, db *gorm.DB, notifiers []notify.Notifier, now time.Time) error {
	d, err := BuildDigest(db, now)
	if err != nil {
		return err
	}
	for _, n := range notifiers {
		if err := n.Send(ctx, d); err != nil {
			log.Printf("reminder: %s delivery failed: %v", n.Name(), err)
		}
	}
	return nil
}

// Run blocks, firing the digest at each cron schedule point until ctx is
// cancelled.
func Run(ctx context.Context, opts Opts) error {
	sched, err := cronParser.Parse(opts.Cron)
	if err != nil {
		return fmt.Errorf("reminder: parse cron %q: %w", opts.Cron, err)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	for {
		next := sched.Next(now())
		wait := next.Sub(now())
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		if err := Fire(ctx, opts.DB, opts.Notifiers, now()); err != nil {
			log.Printf("reminder: %v", err)
		}
	}
}
