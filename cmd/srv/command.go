package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() *cli.App {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "forum"
	app.Usage = "Forum backend with a reaction ledger"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the toml configuration file",
			EnvVars: []string{"FORUM_CONFIG"},
		},
	}
	app.Before = s.loadConfig
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it serves the forum and the reaction endpoints.`,
		},
		{
			Action:      s.startSubscriber,
			Name:        "subscriber",
			Usage:       "Start service subscriber",
			Category:    "Worker",
			Description: `Used to consume reaction events and notify the reacted users.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Category:    "Tool",
			Description: `Used to apply every pending migration on the database.`,
		},
		{
			Action:   s.startReconcile,
			Name:     "reconcile",
			Usage:    "Compare the reaction counters of users with the reactor sets",
			Category: "Tool",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "fix",
					Usage: "Overwrite the drifted counters",
				},
			},
			Description: `Used to detect and repair counters drifted by manual edits of the database.`,
		},
	}

	return app
}
