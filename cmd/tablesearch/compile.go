package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/tablesearch/internal/esquery/table"
	chiTransport "github.com/kailas-cloud/tablesearch/internal/transport/chi"
	searchuc "github.com/kailas-cloud/tablesearch/internal/usecase/search"
)

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:  "compile",
		Usage: "Print the search document for a table search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "request",
				Usage: "Read a JSON request body from a file, or - for stdin",
			},
			&cli.StringFlag{
				Name:  "keywords",
				Usage: "Free-text keywords",
			},
			&cli.StringSliceFlag{
				Name:  "field",
				Usage: "Restrict keyword matching to a field (table_name, description, column). Can be used multiple times",
			},
			&cli.StringSliceFlag{
				Name:  "filter",
				Usage: "Filter as name:value. Repeating a name ORs its values",
			},
			&cli.StringSliceFlag{
				Name:  "and-filter",
				Usage: "Filter name whose values must all match. Can be used multiple times",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of hits (default from config)",
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Number of hits to skip",
			},
			&cli.BoolFlag{
				Name:  "concise",
				Usage: "Return only id, schema and name",
			},
			&cli.StringSliceFlag{
				Name:  "sort",
				Usage: "Sort as key[:order]. Can be used multiple times",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c, false)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			var body chiTransport.TableSearchBody
			if path := c.String("request"); path != "" {
				body, err = readBody(path, reader(c))
			} else {
				body, err = flagBody(c)
			}
			if err != nil {
				return err
			}

			req, err := body.ToRequest(cfg.Search.DefaultLimit)
			if err != nil {
				return err
			}

			andNames := slices.Concat(cfg.Search.AndFilterNames, c.StringSlice("and-filter"))
			svc := searchuc.New(table.NewBuilder(table.WithAndFilterNames(andNames...)))
			doc := svc.CompileTables(ctx, &req)

			enc := json.NewEncoder(writer(c))
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}

func readBody(path string, stdin io.Reader) (chiTransport.TableSearchBody, error) {
	var body chiTransport.TableSearchBody

	r := stdin
	if path != "-" {
		f, err := os.Open(path) //nolint:gosec // user-supplied request file
		if err != nil {
			return body, fmt.Errorf("opening request: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return body, fmt.Errorf("decoding request: %w", err)
	}
	return body, nil
}

func flagBody(c *cli.Command) (chiTransport.TableSearchBody, error) {
	body := chiTransport.TableSearchBody{
		Keywords: c.String("keywords"),
		Fields:   c.StringSlice("field"),
		Offset:   c.Int("offset"),
		Concise:  c.Bool("concise"),
	}
	if c.IsSet("limit") {
		limit := c.Int("limit")
		body.Limit = &limit
	}

	if raw := c.StringSlice("filter"); len(raw) > 0 {
		filters, err := chiTransport.ParseFilters(raw)
		if err != nil {
			return body, err
		}
		body.Filters = filters
	}

	for _, s := range c.StringSlice("sort") {
		key, order, _ := strings.Cut(s, ":")
		body.SortKey = append(body.SortKey, key)
		body.SortOrder = append(body.SortOrder, order)
	}
	return body, nil
}

func writer(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func reader(c *cli.Command) io.Reader {
	if r := c.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
