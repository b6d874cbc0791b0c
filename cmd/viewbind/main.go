package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/viewbind/internal/app"
	"github.com/san-kum/viewbind/internal/choice"
	"github.com/san-kum/viewbind/internal/config"
	"github.com/san-kum/viewbind/internal/roster"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/storage"
)

var (
	dataDir    string
	configFile string
	rosterName string
	preset     string
	logLevel   string
	force      bool
)

// main registers the commands and opens the editor when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "viewbind",
		Short:        "skating club roster editor",
		SilenceUsage: true,
		RunE:         runEdit,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&rosterName, "roster", "", "roster name (overrides config)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "edit the roster in the terminal",
		RunE:  runEdit,
	}

	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "list the skaters of a roster",
		RunE:  listSkaters,
	}

	rostersCmd := &cobra.Command{
		Use:   "rosters",
		Short: "list stored rosters",
		RunE:  listRosters,
	}

	lapsCmd := &cobra.Command{
		Use:   "laps [skater_id]",
		Short: "plot the lap times of a skater",
		Args:  cobra.ExactArgs(1),
		RunE:  plotLaps,
	}

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "export lap times to CSV (stdout without file)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportLaps,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}

	configInitCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Printf("  %-12s commit on %s, %d columns\n", p, cfg.CommitOn, len(cfg.Columns))
			}
			return nil
		},
	}

	configCmd.AddCommand(configInitCmd, presetsCmd)
	rootCmd.AddCommand(editCmd, rosterCmd, rostersCmd, lapsCmd, exportCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(w io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if rosterName != "" {
		cfg.Roster = rosterName
	}
	return cfg, cfg.Validate()
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	// The terminal belongs to the editor while it runs.
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "viewbind.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	if err := setupLogging(logFile); err != nil {
		return err
	}

	a, err := app.New(cfg, st, sched.NewQueue(), slog.Default())
	if err != nil {
		return err
	}
	slog.Info("editing roster", "roster", cfg.Roster, "commit_on", cfg.CommitOn, "skaters", a.Table.RowCount())
	return a.Run()
}

func loadSkaters() (*config.Config, []*roster.Skater, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	skaters, err := storage.New(cfg.DataDir).LoadRoster(cfg.Roster)
	if err != nil {
		return nil, nil, err
	}
	return cfg, skaters, nil
}

func listSkaters(cmd *cobra.Command, args []string) error {
	cfg, skaters, err := loadSkaters()
	if err != nil {
		return err
	}

	if len(skaters) == 0 {
		fmt.Printf("roster %s is empty\n", cfg.Roster)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCLUB\tLEVEL\tBORN\tACTIVE\tBEST")

	for _, sk := range skaters {
		born := ""
		if !sk.BirthDate.IsZero() {
			born = sk.BirthDate.Format("2006-01-02")
		}
		best := "-"
		if len(sk.Laps) > 0 {
			best = fmt.Sprintf("%.2fs", sk.BestLap())
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%v\t%s\n",
			sk.ID,
			sk.Name(),
			choiceText(roster.Categories, sk.Category),
			choiceText(roster.Clubs, sk.Club),
			sk.Level,
			born,
			sk.Active,
			best,
		)
	}

	return w.Flush()
}

func choiceText[K comparable](set choice.Set[K], k K) string {
	if text, ok := set.Text(k); ok {
		return text
	}
	return "-"
}

func listRosters(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rosters, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(rosters) == 0 {
		fmt.Println("no rosters found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSAVED\tSKATERS")
	for _, r := range rosters {
		fmt.Fprintf(w, "%s\t%s\t%d\n", r.Name, r.Saved.Format("2006-01-02 15:04:05"), r.Skaters)
	}
	return w.Flush()
}

func plotLaps(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid skater id %q: %w", args[0], err)
	}

	_, skaters, err := loadSkaters()
	if err != nil {
		return err
	}

	sk, ok := roster.Find(skaters, id)
	if !ok {
		return fmt.Errorf("skater %d not found", id)
	}
	if len(sk.Laps) < 2 {
		fmt.Printf("%s has %d laps, nothing to plot\n", sk.Name(), len(sk.Laps))
		return nil
	}

	graph := asciigraph.Plot(sk.Laps,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("%s lap times (s), best %.2f", sk.Name(), sk.BestLap())),
	)
	fmt.Println(graph)
	return nil
}

func exportLaps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)

	if len(args) == 0 {
		return st.ExportCSV(cfg.Roster, os.Stdout)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if err := st.ExportCSV(cfg.Roster, f); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", cfg.Roster, args[0])
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "viewbind.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists, use --force to overwrite", path)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
