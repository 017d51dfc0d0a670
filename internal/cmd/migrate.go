package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"groupme/internal/cmd/flags"
	"groupme/internal/core"
	"groupme/internal/persistence"
	"groupme/internal/persistence/themes"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Manage the database schema",
	Flags: []cli.Flag{
		flags.DatabaseURL,
	},
	Commands: []*cli.Command{
		{
			Name:  "up",
			Usage: "Apply all pending migrations",
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c,
					persistence.Provide(),
					persistence.ProvideMigrator(),
					pal.Provide(&persistence.MigrationUpRunner{}),
				)
			},
		},
		{
			Name:  "down",
			Usage: "Roll back the last migration",
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c,
					persistence.Provide(),
					persistence.ProvideMigrator(),
					pal.Provide(&persistence.MigrationDownRunner{}),
				)
			},
		},
	},
}

var themesCmd = &cli.Command{
	Name:  "themes",
	Usage: "Manage color themes",
	Flags: []cli.Flag{
		flags.DatabaseURL,
	},
	Commands: []*cli.Command{
		{
			Name:  "populate",
			Usage: "Add the built-in themes, existing ones are left untouched",
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c,
					persistence.Provide(),
					pal.Provide[core.ThemeRepository](&themes.Repository{}),
					pal.Provide(&themes.PopulateRunner{}),
				)
			},
		},
	},
}
