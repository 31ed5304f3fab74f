package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/financial-times/myft.go"
)

type RelationshipCmd struct {
	flags *Flags

	// flags
	params []string
}

func NewRelationshipCmd(flags *Flags) *RelationshipCmd {
	return &RelationshipCmd{flags: flags}
}

// Register adds the relationship command to the application
func (cmd *RelationshipCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "relationship",
		Usage: "Read and write the relationships of an actor",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List every subject of a relationship",
				UsageText: "myft relationship list <actor> <id> <relationship> <type> [--param key=value]",
				Flags:     []cli.Flag{cmd.paramFlag()},
				Action:    cmd.list,
			},
			{
				Name:      "get",
				Usage:     "Fetch one subject of a relationship",
				UsageText: "myft relationship get <actor> <id> <relationship> <type> <subject> [--param key=value]",
				Flags:     []cli.Flag{cmd.paramFlag()},
				Action:    cmd.get,
			},
			{
				Name:      "add",
				Usage:     "Create a relationship",
				UsageText: "myft relationship add <actor> <id> <relationship> <type> [json]",
				Action:    cmd.add,
			},
			{
				Name:      "update",
				Usage:     "Update the relationship with one subject",
				UsageText: "myft relationship update <actor> <id> <relationship> <type> <subject> <json>",
				Action:    cmd.update,
			},
			{
				Name:      "remove",
				Usage:     "Delete the relationship with one subject",
				UsageText: "myft relationship remove <actor> <id> <relationship> <type> <subject>",
				Action:    cmd.remove,
			},
		},
	})

	return app
}

func (cmd *RelationshipCmd) paramFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:        "param",
		Aliases:     []string{"p"},
		Usage:       "query parameter as key=value, repeatable and kept in order",
		Destination: &cmd.params,
	}
}

func parseParams(values []string) (myft.Params, error) {
	var p myft.Params
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("param %q must be key=value", v)
		}
		p = append(p, myft.Param{Key: key, Value: value})
	}
	return p, nil
}

func (cmd *RelationshipCmd) list(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 4); err != nil {
		return err
	}
	params, err := parseParams(cmd.params)
	if err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	args := c.Args()
	raw, err := client.GetAllRelationship(ctx, args.Get(0), args.Get(1), args.Get(2), args.Get(3), params)
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}

func (cmd *RelationshipCmd) get(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 5); err != nil {
		return err
	}
	params, err := parseParams(cmd.params)
	if err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	args := c.Args()
	raw, err := client.GetRelationship(ctx, args.Get(0), args.Get(1), args.Get(2), args.Get(3), args.Get(4), params)
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}

func (cmd *RelationshipCmd) add(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 4); err != nil {
		return err
	}
	args := c.Args()
	data, err := parseData(args.Get(4))
	if err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	raw, err := client.AddRelationship(ctx, args.Get(0), args.Get(1), args.Get(2), args.Get(3), data)
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}

func (cmd *RelationshipCmd) update(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 6); err != nil {
		return err
	}
	args := c.Args()
	data, err := parseData(args.Get(5))
	if err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	raw, err := client.UpdateRelationship(ctx, args.Get(0), args.Get(1), args.Get(2), args.Get(3), args.Get(4), data)
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}

func (cmd *RelationshipCmd) remove(ctx context.Context, c *cli.Command) error {
	if err := requireArgs(c, 5); err != nil {
		return err
	}
	client, err := cmd.flags.client()
	if err != nil {
		return err
	}

	args := c.Args()
	raw, err := client.RemoveRelationship(ctx, args.Get(0), args.Get(1), args.Get(2), args.Get(3), args.Get(4))
	if err != nil {
		return err
	}
	return writeJSON(c, raw)
}
