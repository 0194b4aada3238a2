package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mcoot/playerregistry/internal/api/request"
	"github.com/mcoot/playerregistry/internal/model"
)

// importFile is the YAML document read by "players import":
//
//	players:
//	  - name: Ardan
//	    race: ELF
//	    profession: WARRIOR
//	    birthday: 2010-01-01
//	    experience: 750
type importFile struct {
	Players []importPlayer `yaml:"players"`
}

// importPlayer mirrors the API body; title may be omitted and birthday
// accepts the same formats as the command-line flags
type importPlayer struct {
	Name       *string `yaml:"name"`
	Title      *string `yaml:"title"`
	Race       *string `yaml:"race"`
	Profession *string `yaml:"profession"`
	Birthday   *string `yaml:"birthday"`
	Banned     *bool   `yaml:"banned"`
	Experience *int    `yaml:"experience"`
}

func (p importPlayer) body() (request.PlayerBody, error) {
	body := request.PlayerBody{
		Name:       p.Name,
		Title:      p.Title,
		Race:       p.Race,
		Profession: p.Profession,
		Banned:     p.Banned,
		Experience: p.Experience,
	}
	if body.Title == nil {
		body.Title = new(string)
	}
	if p.Birthday != nil {
		t, err := parseDate(*p.Birthday)
		if err != nil {
			return body, err
		}
		ms := t.UnixMilli()
		body.Birthday = &ms
	}
	return body, nil
}

func readImportFile(path string) ([]request.PlayerBody, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f importFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	bodies := make([]request.PlayerBody, 0, len(f.Players))
	for i, p := range f.Players {
		body, err := p.body()
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		if err := model.ValidateNew(body.ToPatch()); err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		bodies = append(bodies, body)
	}
	return bodies, nil
}

func newPlayersImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Create every player listed in a YAML file",
		Long: `Create every player listed in a YAML file.

All entries are validated before anything is sent; the first invalid entry
aborts the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bodies, err := readImportFile(args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			if dryRun {
				out.PrintMessage(fmt.Sprintf("%d players valid", len(bodies)))
				return nil
			}

			for i, body := range bodies {
				player, err := client.CreatePlayer(cmd.Context(), body)
				if err != nil {
					return fmt.Errorf("player %d: %w", i+1, err)
				}
				if cfg.Verbose {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "created player %d (%s)\n", player.ID, player.Name)
				}
			}
			out.PrintMessage(fmt.Sprintf("Imported %d players", len(bodies)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without creating players")

	return cmd
}
