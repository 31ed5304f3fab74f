package commands

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/financial-times/myft.go/pkg/constants"
	"github.com/financial-times/myft.go/pkg/events"
	"github.com/financial-times/myft.go/pkg/notifications"
)

type NotificationsCmd struct {
	flags *Flags

	// flags
	interval   time.Duration
	since      string
	once       bool
	optimistic bool
}

func NewNotificationsCmd(flags *Flags) *NotificationsCmd {
	return &NotificationsCmd{flags: flags}
}

// Register adds the notifications command to the application
func (cmd *NotificationsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "notifications",
		Usage: "Poll and update the articleFromFollow notifications of a user",
		Commands: []*cli.Command{
			{
				Name:      "watch",
				Usage:     "Poll for notifications and print every event as a JSON line",
				UsageText: "myft notifications watch <user-id> [--interval 30s] [--once]",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:        "interval",
						Usage:       "time between polls",
						Value:       constants.DefaultPollInterval,
						Destination: &cmd.interval,
					},
					&cli.BoolFlag{
						Name:        "once",
						Usage:       "poll a single time and exit",
						Destination: &cmd.once,
					},
					cmd.sinceFlag(),
				},
				Action: cmd.watch,
			},
			{
				Name:      "clear",
				Usage:     "Mark notifications as read",
				UsageText: "myft notifications clear <user-id> <id>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "optimistic",
						Usage:       "send the update without polling first",
						Destination: &cmd.optimistic,
					},
					cmd.sinceFlag(),
				},
				Action: cmd.clear,
			},
			{
				Name:      "seen",
				Usage:     "Mark notifications as seen",
				UsageText: "myft notifications seen <user-id> <id>...",
				Action:    cmd.seen,
			},
		},
	})

	return app
}

func (cmd *NotificationsCmd) sinceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "since",
		Usage:       "look-back window of each poll",
		Value:       constants.DefaultPollSince,
		Destination: &cmd.since,
	}
}

func (cmd *NotificationsCmd) poller(userID string, bus events.Bus) (*notifications.Poller, error) {
	client, err := cmd.flags.client()
	if err != nil {
		return nil, err
	}

	opts := []notifications.Option{
		notifications.WithBus(bus),
		notifications.WithLogger(cmd.flags.logger()),
	}
	if cmd.since != "" {
		opts = append(opts, notifications.WithSince(cmd.since))
	}
	if cmd.interval > 0 {
		opts = append(opts, notifications.WithInterval(cmd.interval))
	}
	return notifications.New(client, userID, opts...), nil
}

func (cmd *NotificationsCmd) watch(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}

	bus := events.NewBus()
	ch, unsub := bus.Subscribe(16)
	defer unsub()

	p, err := cmd.poller(c.Args().Get(0), bus)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.Root().Writer)

	if cmd.once {
		if err := p.Poll(ctx); err != nil {
			return err
		}
		return enc.Encode(<-ch)
	}

	p.Start(ctx)
	defer p.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-ch:
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
	}
}

func (cmd *NotificationsCmd) clear(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}

	p, err := cmd.poller(c.Args().Get(0), events.Discard{})
	if err != nil {
		return err
	}
	if !cmd.optimistic {
		if err := p.Poll(ctx); err != nil {
			return err
		}
	}
	return p.Clear(ctx, c.Args().Slice()[1:], cmd.optimistic)
}

func (cmd *NotificationsCmd) seen(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}

	p, err := cmd.poller(c.Args().Get(0), events.Discard{})
	if err != nil {
		return err
	}
	return p.MarkAsSeen(ctx, c.Args().Slice()[1:])
}
