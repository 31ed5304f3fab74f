package commands

import (
	"context"

	"github.com/urfave/cli/v3"
)

type PurgeCmd struct {
	flags *Flags
}

func NewPurgeCmd(flags *Flags) *PurgeCmd {
	return &PurgeCmd{flags: flags}
}

// Register adds the purge command to the application
func (cmd *PurgeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "purge",
		Usage: "Permanently remove an actor or one of its relationships",
		Commands: []*cli.Command{
			{
				Name:      "actor",
				Usage:     "Purge an actor and every relationship it has",
				UsageText: "myft purge actor <actor> <id>",
				Action:    cmd.actor,
			},
			{
				Name:      "relationship",
				Usage:     "Purge one relationship of an actor",
				UsageText: "myft purge relationship <actor> <id> <relationship>",
				Action:    cmd.relationship,
			},
		},
	})

	return app
}

func (cmd *PurgeCmd) actor(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	raw, err := client.PurgeActor(ctx, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}

func (cmd *PurgeCmd) relationship(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 3); err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	raw, err := client.PurgeRelationship(ctx, c.Args().Get(0), c.Args().Get(1), c.Args().Get(2))
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}
