package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/bcnelson/netinventory/internal/domain"
	"github.com/urfave/cli/v3"
)

const LocalTimeFormat = "2006-01-02 15:04:05 MST"

func equipmentTableFields() []TableField {
	var fields []TableField
	fields = append(fields, TableField{Header: "ID", Formatter: func(item any) string {
		return strconv.FormatInt(item.(*domain.Equipment).ID, 10)
	}})
	fields = append(fields, TableField{Header: "NAME", Formatter: func(item any) string {
		return item.(*domain.Equipment).Name
	}})
	fields = append(fields, TableField{Header: "TYPE", Formatter: func(item any) string {
		return item.(*domain.Equipment).Type
	}})
	fields = append(fields, TableField{Header: "IP", Formatter: func(item any) string {
		return item.(*domain.Equipment).IP
	}})
	fields = append(fields, TableField{Header: "MAC", Formatter: func(item any) string {
		return domain.StringValue(item.(*domain.Equipment).MAC)
	}})
	fields = append(fields, TableField{Header: "VLAN", Formatter: func(item any) string {
		return domain.StringValue(item.(*domain.Equipment).VLAN)
	}})
	fields = append(fields, TableField{Header: "LOCATION", Formatter: func(item any) string {
		return domain.StringValue(item.(*domain.Equipment).Location)
	}})
	fields = append(fields, TableField{Header: "ADDED", Formatter: func(item any) string {
		return item.(*domain.Equipment).DateAdded.Local().Format(LocalTimeFormat)
	}})
	return fields
}

// asList flattens a single record into a one-row list for table output.
func asList(result any) []any {
	switch v := result.(type) {
	case []*domain.Equipment:
		items := make([]any, 0, len(v))
		for _, eq := range v {
			items = append(items, eq)
		}
		return items
	case *domain.Equipment:
		return []any{v}
	default:
		return nil
	}
}

func equipmentFieldFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Required: required},
		&cli.StringFlag{Name: "type", Required: required},
		&cli.StringFlag{Name: "ip", Required: required},
		&cli.StringFlag{Name: "mac"},
		&cli.StringFlag{Name: "vlan"},
		&cli.StringFlag{Name: "location"},
	}
}

func equipmentInputFromFlags(command *cli.Command) *domain.EquipmentInput {
	return &domain.EquipmentInput{
		Name:     command.String("name"),
		Type:     command.String("type"),
		IP:       command.String("ip"),
		MAC:      domain.StringPtr(command.String("mac")),
		VLAN:     domain.StringPtr(command.String("vlan")),
		Location: domain.StringPtr(command.String("location")),
	}
}

func createListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List equipment",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "location", Usage: "only show equipment at this location"},
			&cli.StringFlag{Name: "vlan", Usage: "only show equipment on this VLAN"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			filter := domain.EquipmentFilter{
				Location: domain.StringPtr(command.String("location")),
				VLAN:     domain.StringPtr(command.String("vlan")),
			}
			items, err := createClient(command).List(ctx, filter)
			if err != nil {
				return err
			}
			show(command, equipmentTableFields(), items)
			return nil
		},
	}
}

func createGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one piece of equipment",
		ArgsUsage: "ID",
		Action: func(ctx context.Context, command *cli.Command) error {
			id, err := idArg(command)
			if err != nil {
				return err
			}
			eq, err := createClient(command).Get(ctx, id)
			if err != nil {
				return err
			}
			show(command, equipmentTableFields(), eq)
			return nil
		},
	}
}

func createCreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Add equipment to the inventory",
		Flags: equipmentFieldFlags(true),
		Action: func(ctx context.Context, command *cli.Command) error {
			c := createClient(command)
			id, err := c.Create(ctx, equipmentInputFromFlags(command))
			if err != nil {
				return err
			}
			eq, err := c.Get(ctx, id)
			if err != nil {
				return err
			}
			show(command, equipmentTableFields(), eq)
			showSuccessfully(command, "created")
			return nil
		},
	}
}

func createUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Replace every field of a piece of equipment",
		ArgsUsage: "ID",
		Flags:     equipmentFieldFlags(true),
		Action: func(ctx context.Context, command *cli.Command) error {
			id, err := idArg(command)
			if err != nil {
				return err
			}
			c := createClient(command)
			if err := c.Update(ctx, id, equipmentInputFromFlags(command)); err != nil {
				return err
			}
			eq, err := c.Get(ctx, id)
			if err != nil {
				return err
			}
			show(command, equipmentTableFields(), eq)
			showSuccessfully(command, "updated")
			return nil
		},
	}
}

func createDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Remove a piece of equipment",
		ArgsUsage: "ID",
		Action: func(ctx context.Context, command *cli.Command) error {
			id, err := idArg(command)
			if err != nil {
				return err
			}
			if err := createClient(command).Delete(ctx, id); err != nil {
				return err
			}
			showSuccessfully(command, "deleted")
			return nil
		},
	}
}

func createExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Download the whole inventory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: "json", Usage: "json or csv"},
			&cli.StringFlag{Name: "file", Usage: "write to this file instead of stdout"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			exp, err := createClient(command).Export(ctx, command.String("format"))
			if err != nil {
				return err
			}
			file := command.String("file")
			if file == "" {
				_, err = os.Stdout.Write(exp.Body)
				return err
			}
			if err := os.WriteFile(file, exp.Body, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", file, err)
			}
			fmt.Printf("wrote %d bytes to %s\n", len(exp.Body), file)
			return nil
		},
	}
}
