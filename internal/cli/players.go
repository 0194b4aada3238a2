package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/query"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"player"},
		Short:   "Player management commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersCountCmd())
	cmd.AddCommand(newPlayersGetCmd())
	cmd.AddCommand(newPlayersCreateCmd())
	cmd.AddCommand(newPlayersUpdateCmd())
	cmd.AddCommand(newPlayersDeleteCmd())
	cmd.AddCommand(newPlayersImportCmd())
	cmd.AddCommand(newPlayersSeedCmd())

	return cmd
}

func newPlayersListCmd() *cobra.Command {
	var (
		filters filterFlags
		order   string
		number  int
		size    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := filters.criteria(cmd)
			if err != nil {
				return err
			}
			o, err := query.ParseOrder(order)
			if err != nil {
				return err
			}
			page := query.Page{Order: o, Number: number, Size: size}
			if err := page.Validate(); err != nil {
				return err
			}

			players, err := client.ListPlayers(cmd.Context(), criteria, page)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(players)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&order, "order", string(query.DefaultOrder), "Sort order: id, name, experience, birthday, level")
	cmd.Flags().IntVar(&number, "page", query.DefaultPageNumber, "Zero-based page number")
	cmd.Flags().IntVar(&size, "size", query.DefaultPageSize, "Page size")

	return cmd
}

func newPlayersCountCmd() *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count players matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := filters.criteria(cmd)
			if err != nil {
				return err
			}

			n, err := client.CountPlayers(cmd.Context(), criteria)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(n)
			return nil
		},
	}

	filters.register(cmd)

	return cmd
}

func newPlayersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a player by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParsePlayerID(args[0])
			if err != nil {
				return err
			}

			player, err := client.GetPlayer(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(player)
			return nil
		},
	}
}

func newPlayersCreateCmd() *cobra.Command {
	var fields bodyFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player",
		Example: `  playerctl players create --name Ardan --title "of the North" \
    --race elf --profession warrior --birthday 2010-01-01 --experience 750`,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := fields.body(cmd)
			if err != nil {
				return err
			}
			if body.Title == nil {
				body.Title = new(string)
			}

			player, err := client.CreatePlayer(cmd.Context(), body)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(player)
			return nil
		},
	}

	fields.register(cmd)
	for _, name := range []string{"name", "race", "profession", "birthday", "experience"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newPlayersUpdateCmd() *cobra.Command {
	var fields bodyFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParsePlayerID(args[0])
			if err != nil {
				return err
			}
			body, err := fields.body(cmd)
			if err != nil {
				return err
			}

			player, err := client.UpdatePlayer(cmd.Context(), id, body)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(player)
			return nil
		},
	}

	fields.register(cmd)

	return cmd
}

func newPlayersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParsePlayerID(args[0])
			if err != nil {
				return err
			}

			if err := client.DeletePlayer(cmd.Context(), id); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted player %d", id))
			return nil
		},
	}
}
