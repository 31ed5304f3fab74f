package commands

import (
	"context"

	"github.com/urfave/cli/v3"
)

type ActorCmd struct {
	flags *Flags
}

func NewActorCmd(flags *Flags) *ActorCmd {
	return &ActorCmd{flags: flags}
}

// Register adds the actor command to the application
func (cmd *ActorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "actor",
		Usage: "Read and write actors such as users",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Fetch one actor",
				UsageText: "myft actor get <actor> <id>",
				Action:    cmd.get,
			},
			{
				Name:      "add",
				Usage:     "Create an actor",
				UsageText: "myft actor add <actor> [json]",
				Action:    cmd.add,
			},
			{
				Name:      "update",
				Usage:     "Update an actor",
				UsageText: "myft actor update <actor> <id> <json>",
				Action:    cmd.update,
			},
			{
				Name:      "remove",
				Usage:     "Delete an actor",
				UsageText: "myft actor remove <actor> <id>",
				Action:    cmd.remove,
			},
		},
	})

	return app
}

func (cmd *ActorCmd) get(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	raw, err := client.GetActor(ctx, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}

func (cmd *ActorCmd) add(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	data, err := parseData(c.Args().Get(1))
	if err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	raw, err := client.AddActor(ctx, c.Args().Get(0), data)
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}

func (cmd *ActorCmd) update(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 3); err != nil {
		return err
	}
	data, err := parseData(c.Args().Get(2))
	if err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	raw, err := client.UpdateActor(ctx, c.Args().Get(0), c.Args().Get(1), data)
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}

func (cmd *ActorCmd) remove(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	raw, err := client.RemoveActor(ctx, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}
