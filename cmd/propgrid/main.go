package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/henri123lemoine/propgrid/internal/app"
	"github.com/henri123lemoine/propgrid/internal/config"
	"github.com/henri123lemoine/propgrid/internal/debug"
	"github.com/henri123lemoine/propgrid/internal/document"
	"github.com/henri123lemoine/propgrid/internal/property"
	"github.com/henri123lemoine/propgrid/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "propgrid [file]",
		Short: "Edit a list of named properties in the terminal",
		Long: `propgrid shows a two-column grid of named values and lets you edit them.
Numbers and text get an input field, booleans a checkbox and string lists
a drop-down. Without a file, a small sample document is opened.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
	}

	addFlags(cmd.Flags())

	v.SetEnvPrefix("propgrid")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	cobra.CheckErr(v.BindPFlags(cmd.Flags()))

	return cmd
}

func addFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default is $XDG_CONFIG_HOME/propgrid/config.toml)")
	flags.Bool("compact", false, "use the dense one-line row layout")
	flags.String("theme", "", "color theme: auto, dark or light")
	flags.StringP("out", "o", "", "write the edited document to this file on exit")
	flags.Bool("debug", false, "write a debug log")
	flags.String("log-file", "", "debug log path")
}

func run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	cfgPath := v.GetString("config")
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}
	cfg, err := config.LoadFromPath(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyOverrides(v)
	for _, w := range cfg.Validate() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	ui.ApplyTheme(cfg.UI.Theme)

	if v.GetBool("debug") {
		if err := debug.Enable(cfg.Debug.LogFile); err != nil {
			return fmt.Errorf("enabling debug log: %w", err)
		}
		defer debug.Close()
	}

	doc, err := openDocument(args)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app.New(cfg, doc), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(app.Model); ok {
		doc = m.Document()
	}

	if out := v.GetString("out"); out != "" {
		if err := doc.Save(out); err != nil {
			return fmt.Errorf("saving %s: %w", out, err)
		}
		debug.Log("saved %d properties to %s", len(doc.Items()), out)
		return nil
	}

	for _, c := range doc.Changes() {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatChange(c.Name, c.Value))
	}
	return nil
}

func openDocument(args []string) (*document.Document, error) {
	if len(args) == 1 {
		return document.Load(args[0])
	}
	return document.New([]property.Item{
		property.Pair("Width", 100),
		property.Pair("Title", "Untitled"),
		property.Pair("Visible", true),
		property.Pair("Color", []string{"red", "green", "blue"}),
	}), nil
}
