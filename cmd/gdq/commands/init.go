package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/l3aro/go-dominance-query/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gdq configuration interactively",
	Long: `Guides you through setting up gdq configuration step by step.
Creates a config file with output, verification and cache settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	cfg := config.DefaultConfig()

	var outputChoice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format - How analysis results are printed").
				Description("Select the default output format").
				Options(
					huh.NewOption("Human-readable text", string(config.OutputText)),
					huh.NewOption("JSON", string(config.OutputJSON)),
				).
				Value(&outputChoice),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}
	cfg.Output = config.OutputFormat(outputChoice)

	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Differential verification").
				Description("Cross-check every analysis against the classical solver? Slower, aborts on solver disagreement.").
				Affirmative("Yes, always verify").
				Negative("No, fast solver only").
				Value(&cfg.Verify),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	var useCache bool = true
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Result cache").
				Description("Persist analysis results between runs?").
				Affirmative("Yes").
				Negative("No").
				Value(&useCache),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	if useCache {
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Cache directory").
					Placeholder(cfg.CacheDir).
					Value(&cfg.CacheDir),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
	} else {
		cfg.CacheDir = ""
	}

	path := config.GlobalPath()
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Printf("Configuration written to %s\n", path)
	return nil
}

func init() {
	RootCmd.AddCommand(initCmd)
}
