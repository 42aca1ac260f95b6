package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/tablesearch/internal/config"
	"github.com/kailas-cloud/tablesearch/internal/version"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "tablesearch",
		Usage:   "Compile table searches into Elasticsearch queries",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path (default: config/$ENV.yaml)",
			},
		},
		Commands: []*cli.Command{
			compileCommand(),
			serveCommand(),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(_ context.Context, c *cli.Command) error {
			_, err := fmt.Fprintln(writer(c), version.String())
			return err
		},
	}
}

// loadConfig reads --config when given. Otherwise serve resolves the file
// from ENV and compile falls back to built-in defaults.
func loadConfig(c *cli.Command, requireFile bool) (config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.LoadFile(path)
	}
	if requireFile {
		return config.Load(config.GetEnv())
	}
	return config.Parse(nil)
}
