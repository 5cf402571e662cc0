package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Seednode/arcade/internal/gate"
	"github.com/Seednode/arcade/internal/httpx"
	"github.com/Seednode/arcade/internal/pusoy"
)

type Config struct {
	bind        string
	botDelay    time.Duration
	botModel    string
	maxRequest  int
	opsPort     int
	passwordLog string
	port        int
	prefix      string
	profile     bool
	staticRoot  string
	termBank    string
	tickPeriod  time.Duration
	turnTimeout time.Duration
	verbose     bool
	version     bool
	vocabLog    string
	wordList    string
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.opsPort < 0 || c.opsPort > 65535 {
		return fmt.Errorf("invalid ops port (must be between 0-65535 inclusive): %d", c.opsPort)
	}
	if c.opsPort == c.port {
		return errors.New("--port and --ops-port cannot match")
	}
	if c.maxRequest < 1 {
		return fmt.Errorf("invalid max request size: %d", c.maxRequest)
	}
	if c.tickPeriod <= 0 {
		return fmt.Errorf("invalid tick period: %s", c.tickPeriod)
	}
	if c.vocabLog != "" && c.termBank == "" {
		return errors.New("--vocab-log requires --term-bank")
	}
	if c.botModel != "" && c.wordList == "" {
		return errors.New("--bot-model requires --word-list")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ARCADE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "arcade",
		Short:         "A collection of small multiplayer games behind one WebSocket server.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: ARCADE_BIND)")
	fs.DurationVar(&cfg.botDelay, "bot-delay", pusoy.DefaultBotDelay, "pause before a bot takes its turn (env: ARCADE_BOT_DELAY)")
	fs.StringVar(&cfg.botModel, "bot-model", "", "path to expected-pass-count model for smarter bots (env: ARCADE_BOT_MODEL)")
	fs.IntVar(&cfg.maxRequest, "max-request-bytes", httpx.DefaultMaxRequestBytes, "upgrade request size limit (env: ARCADE_MAX_REQUEST_BYTES)")
	fs.IntVar(&cfg.opsPort, "ops-port", 8081, "port for health/version/pprof endpoints, 0 to disable (env: ARCADE_OPS_PORT)")
	fs.StringVar(&cfg.passwordLog, "password-log", "", "append /secure submissions to this file (env: ARCADE_PASSWORD_LOG)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: ARCADE_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to ops URLs, for use behind reverse proxy (env: ARCADE_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: ARCADE_PROFILE)")
	fs.StringVar(&cfg.staticRoot, "static-root", "", "serve plain files from this directory for non-upgrade requests (env: ARCADE_STATIC_ROOT)")
	fs.StringVar(&cfg.termBank, "term-bank", "", "path to the tab-separated term bank (env: ARCADE_TERM_BANK)")
	fs.DurationVar(&cfg.tickPeriod, "tick-period", gate.DefaultTickPeriod, "pause between tenant tick sweeps (env: ARCADE_TICK_PERIOD)")
	fs.DurationVar(&cfg.turnTimeout, "turn-timeout", pusoy.DefaultTurnTimeout, "time before an idle player is forced to play (env: ARCADE_TURN_TIMEOUT)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: ARCADE_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: ARCADE_VERSION)")
	fs.StringVar(&cfg.vocabLog, "vocab-log", "", "append quiz answers to this confusion log (env: ARCADE_VOCAB_LOG)")
	fs.StringVar(&cfg.wordList, "word-list", "", "path to the game id word list (env: ARCADE_WORD_LIST)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("arcade v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
