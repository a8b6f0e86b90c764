package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naveenspark/notas/internal/config"
	"github.com/naveenspark/notas/internal/logging"
	"github.com/naveenspark/notas/internal/tui"
	"github.com/naveenspark/notas/pkg/client"
)

// globalFlags are shared by every command. Flags win over the config
// file and the environment, but only when set on the command line.
type globalFlags struct {
	configPath string
	apiURL     string
	lang       string
	logFile    string
	logLevel   string
	timeout    time.Duration
	user       string
}

// deps is what a command needs once configuration is resolved.
type deps struct {
	cfg      config.Config
	log      zerolog.Logger
	client   *client.Client
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "notas",
		Short: "Terminal client for the notas service",
		Long: `notas logs in to a notas backend with a username and lets you list,
create, edit and delete your notes. Without a subcommand it starts the
interactive interface; the session lasts until you quit.`,
		Example: `notas
notas list -u alice
notas create -u alice --title "Buy milk" --tags errand`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := g.resolve(cmd)
			if err != nil {
				return err
			}
			defer d.closeLog() //nolint:errcheck // best-effort close
			return runTUI(d)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default ~/.notas/config.yaml)")
	pf.StringVar(&g.apiURL, "api-url", "", "backend base URL (env "+config.EnvAPIURL+")")
	pf.StringVar(&g.lang, "lang", "", "interface language: pt or en (env "+config.EnvLang+")")
	pf.StringVar(&g.logFile, "log-file", "", `diagnostic log file, "-" for stderr (env `+config.EnvLogFile+")")
	pf.StringVar(&g.logLevel, "log-level", "", "log level (env "+config.EnvLogLevel+")")
	pf.DurationVar(&g.timeout, "timeout", 0, "request timeout, 0 waits forever (env "+config.EnvTimeout+")")
	pf.StringVarP(&g.user, "user", "u", "", "username to log in with (subcommands)")

	cmd.AddCommand(
		newListCmd(g),
		newCreateCmd(g),
		newUpdateCmd(g),
		newDeleteCmd(g),
		newWebCmd(g),
		newConfigCmd(g),
	)
	return cmd
}

// loadConfig resolves the effective configuration for cmd.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = g.apiURL
	}
	if flags.Changed("lang") {
		cfg.Lang = g.lang
	}
	if flags.Changed("log-file") {
		cfg.LogFile = g.logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if flags.Changed("timeout") {
		cfg.Timeout = g.timeout
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// resolve loads config, opens the log and builds the API client.
func (g *globalFlags) resolve(cmd *cobra.Command) (*deps, error) {
	cfg, err := g.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log = log.With().Str("cmd", cmd.Name()).Logger()
	c := client.New(cfg.APIURL, client.WithTimeout(cfg.Timeout), client.WithLogger(log))
	return &deps{cfg: cfg, log: log, client: c, closeLog: closeLog}, nil
}

func runTUI(d *deps) error {
	app := tui.NewApp(d.client, tui.Options{
		Lang:   d.cfg.Lang,
		Logger: d.log,
		WebURL: d.cfg.APIURL,
	})
	d.log.Info().Str("api", d.cfg.APIURL).Str("version", version).Msg("starting")
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
