// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles LinkedIn authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage LinkedIn authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with LinkedIn using OAuth2",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show stored sessions and check the local server",
				Action: r.AuthStatus,
			},
			{
				Name:  "logout",
				Usage: "Delete stored sessions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "member",
						Usage: "Member ID to log out (default: all)",
					},
				},
				Action: r.AuthLogout,
			},
		},
	}
}

// postsCommand handles feed operations
func postsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "posts",
		Aliases: []string{"p"},
		Usage:   "Read and publish LinkedIn posts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your recent posts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "member",
						Usage: "Member ID when multiple sessions are stored",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of posts to print",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PostsList,
			},
			{
				Name:  "create",
				Usage: "Publish a new post",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "text",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "member",
						Usage: "Member ID when multiple sessions are stored",
					},
					&cli.BoolFlag{
						Name:  "enhance",
						Usage: "Rework the text with Gemini before publishing",
					},
				},
				Action: r.PostsCreate,
			},
			{
				Name:  "draft",
				Usage: "Generate a post draft with Gemini",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "prompt",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PostsDraft,
			},
			{
				Name:  "export",
				Usage: "Archive your post history to disk",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "member",
						Usage: "Member ID when multiple sessions are stored",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Archive format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent archive workers",
					},
					&cli.IntFlag{
						Name:  "rate",
						Usage: "Per-post operations per second",
					},
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "Posts per page when fetching",
					},
					&cli.BoolFlag{
						Name:  "summarize",
						Usage: "Attach Gemini summaries to each post",
					},
				},
				Action: r.PostsExport,
			},
		},
	}
}

// serveCommand runs the web application
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the LinkedIn feed web app",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Bind address (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create a config file from the embedded example",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive feed management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive feed TUI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "member",
				Usage: "Member ID when multiple sessions are stored",
			},
		},
		Action: r.TUI,
	}
}
