package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/bcnelson/netinventory/internal/client"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	encodeJsonRaw    = "json-raw"
	encodeJsonPretty = "json"
	encodeNoHeader   = "no-header"
	encodeColumn     = "column"
)

// Version is set using ldflags at build time.
var Version = "dev"

// DefaultServiceURL is optionally set at build time using ldflags
var DefaultServiceURL = "http://localhost:5000"

func main() {
	app := &cli.Command{
		Name:  "inventoryctl",
		Usage: "manages the network equipment inventory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Value:   DefaultServiceURL,
				Usage:   "Inventory server URL",
				Sources: cli.EnvVars("INVENTORY_URL"),
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key sent on create, update and delete",
				Sources: cli.EnvVars("API_KEY"),
			},
			&cli.StringFlag{
				Name:  "output",
				Value: encodeColumn,
				Usage: "output format: json, json-raw, no-header, column",
			},
		},
		Commands: []*cli.Command{
			createListCommand(),
			createGetCommand(),
			createCreateCommand(),
			createUpdateCommand(),
			createDeleteCommand(),
			createExportCommand(),
			{
				Name:  "version",
				Usage: "Show client and server versions",
				Action: func(ctx context.Context, command *cli.Command) error {
					fmt.Printf("client: %s\n", Version)
					info, err := createClient(command).Version(ctx)
					if err != nil {
						return err
					}
					fmt.Printf("server: %s (%s)\n", info.Version, info.Mode)
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func createClient(command *cli.Command) *client.Client {
	c, err := client.New(command.String("url"), client.WithAPIKey(command.String("api-key")))
	if err != nil {
		log.Fatal(err)
	}
	return c
}

// idArg parses the first positional argument as a record id.
func idArg(command *cli.Command) (int64, error) {
	arg := command.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("missing equipment id")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid equipment id: %s", arg)
	}
	return id, nil
}

type TableField struct {
	Header    string
	Formatter func(item any) string
}

func show(command *cli.Command, fields []TableField, result any) {
	output := command.String("output")
	switch output {
	case encodeJsonPretty:
		bytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("failed to encode the ctl output: %v", err)
		}
		fmt.Println(string(bytes))

	case encodeJsonRaw:
		bytes, err := json.Marshal(result)
		if err != nil {
			log.Fatalf("failed to encode the ctl output: %v", err)
		}
		fmt.Println(string(bytes))

	case encodeColumn, encodeNoHeader:
		table := tablewriter.NewWriter(os.Stdout)
		table.SetBorders(tablewriter.Border{
			Left:   true,
			Right:  true,
			Top:    false,
			Bottom: false,
		})
		table.SetAutoWrapText(false)

		if output != encodeNoHeader {
			var headers []string
			for _, field := range fields {
				headers = append(headers, field.Header)
			}
			table.SetHeader(headers)
		}

		for _, item := range asList(result) {
			var row []string
			for _, field := range fields {
				row = append(row, field.Formatter(item))
			}
			table.Append(row)
		}
		table.Render()

	default:
		log.Fatalf("unknown format option: %s", output)
	}
}

func showSuccessfully(command *cli.Command, action string) {
	if command.String("output") == encodeColumn {
		fmt.Printf("\nsuccessfully %s\n", action)
	}
}
