package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/financial-times/myft.go/pkg/urls"
)

type URLCmd struct{}

func NewURLCmd() *URLCmd {
	return &URLCmd{}
}

// Register adds the url command to the application
func (cmd *URLCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "url",
		Usage: "Personalise and classify myFT page URLs",
		Commands: []*cli.Command{
			{
				Name:      "personalise",
				Usage:     "Insert a user id into a myFT page URL",
				UsageText: "myft url personalise <path> <user-id>",
				Action:    cmd.personalise,
			},
			{
				Name:      "check",
				Usage:     "Report whether a URL is personalised or immutable",
				UsageText: "myft url check <path>",
				Action:    cmd.check,
			},
		},
	})

	return app
}

func (cmd *URLCmd) personalise(_ context.Context, c *cli.Command) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.Root().Writer, urls.PersonaliseURL(c.Args().Get(0), c.Args().Get(1)))
	return err
}

func (cmd *URLCmd) check(_ context.Context, c *cli.Command) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	path := c.Args().Get(0)
	_, err := fmt.Fprintf(c.Root().Writer, "personalised=%t immutable=%t\n",
		urls.IsPersonalisedURL(path), urls.IsImmutableURL(path))
	return err
}
