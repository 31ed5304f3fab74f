package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/financial-times/myft.go/pkg/models"
	"github.com/financial-times/myft.go/pkg/userprefs"
)

type PrefsCmd struct {
	flags *Flags
}

func NewPrefsCmd(flags *Flags) *PrefsCmd {
	return &PrefsCmd{flags: flags}
}

// Register adds the prefs command to the application
func (cmd *PrefsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "prefs",
		Usage: "Work with the collections of a signed in user",
		Commands: []*cli.Command{
			{
				Name:      "load",
				Usage:     "Load one collection of a user",
				UsageText: "myft prefs load <user-id> <followed|forlater|preferred|recommended|articleFromFollow>",
				Action:    cmd.load,
			},
		},
	})

	return app
}

func (cmd *PrefsCmd) load(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	prefs := userprefs.New(client, c.Args().Get(0), userprefs.WithLogger(cmd.flags.logger()))
	resp, err := prefs.Load(ctx, models.Verb(c.Args().Get(1)))
	if err != nil {
		return err
	}

	return writeJSON(c, resp.Raw)
}
