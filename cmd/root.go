/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	uart "github.com/allbin/msp-uart"
	"github.com/allbin/msp-uart/internal/libmsp430"
	"github.com/allbin/msp-uart/internal/logging"
	"github.com/allbin/msp-uart/internal/session"
	"github.com/allbin/msp-uart/internal/tui/styles"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mspuart",
	Short: "Open a terminal on the UART of an MSP430 board",
	Long: `Find the application UARTs of attached MSP430 development boards and
open minicom on the one you pick, at the right baud rate.

On Linux, debug-probe interfaces (XDS110, MSP-FET, CP210X bridges) are
filtered out using TI's libmsp430 when it is installed and the USB IDs
from the vendor driver packages. On macOS the third USB modem interface
of each board is used.

Running without a subcommand is the same as 'mspuart connect'.`,
	Args: cobra.NoArgs,
	Run:  runConnect,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/mspuart/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("by-id-dir", "/dev/serial/by-id", "Directory of serial device links (Linux)")
	rootCmd.PersistentFlags().String("device-dir", "/dev", "Device directory (macOS)")
	rootCmd.PersistentFlags().String("udevadm", "udevadm", "udevadm binary used to read USB IDs (Linux)")
	rootCmd.PersistentFlags().String("terminal", session.DefaultProgram, "Terminal program")

	for key, flag := range map[string]string{
		"log.debug":         "debug",
		"log.level":         "log-level",
		"devices.by_id_dir": "by-id-dir",
		"devices.dir":       "device-dir",
		"udevadm":           "udevadm",
		"terminal.program":  "terminal",
	} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}

	addConnectFlags(rootCmd)
	setDefaults()
}

func setDefaults() {
	defaults := uart.DefaultConfig()
	rules := session.DefaultBaudRules()

	viper.SetDefault("devices.modem_prefix", defaults.ModemPrefix)
	viper.SetDefault("devices.uart_suffix", defaults.UARTSuffix)
	viper.SetDefault("library.name", libmsp430.DefaultName)
	viper.SetDefault("library.globs", libmsp430.DefaultGlobs())
	viper.SetDefault("log.json", false)
	viper.SetDefault("baud.default", rules.Default)

	defaultRules := make([]map[string]any, 0, len(rules.Rules))
	for _, rule := range rules.Rules {
		defaultRules = append(defaultRules, map[string]any{"contains": rule.Contains, "baud": rule.Baud})
	}
	viper.SetDefault("baud.rules", defaultRules)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "mspuart"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("MSPUART")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}
}

// settings mirrors the configuration keys
type settings struct {
	Log struct {
		Debug bool   `mapstructure:"debug"`
		Level string `mapstructure:"level"`
		JSON  bool   `mapstructure:"json"`
	} `mapstructure:"log"`

	Devices struct {
		Dir         string `mapstructure:"dir"`
		ByIDDir     string `mapstructure:"by_id_dir"`
		ModemPrefix string `mapstructure:"modem_prefix"`
		UARTSuffix  string `mapstructure:"uart_suffix"`
	} `mapstructure:"devices"`

	Library struct {
		Name  string   `mapstructure:"name"`
		Globs []string `mapstructure:"globs"`
	} `mapstructure:"library"`

	Udevadm string `mapstructure:"udevadm"`

	Terminal struct {
		Program string `mapstructure:"program"`
	} `mapstructure:"terminal"`

	Baud struct {
		Default int                `mapstructure:"default"`
		Rules   []session.BaudRule `mapstructure:"rules"`
	} `mapstructure:"baud"`
}

func loadSettings() (settings, error) {
	var s settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

func (s settings) logger() (zerolog.Logger, error) {
	return logging.New(logging.Config{
		Level: s.Log.Level,
		Debug: s.Log.Debug,
		JSON:  s.Log.JSON,
	})
}

func (s settings) enumeratorOptions(logger zerolog.Logger) []uart.Option {
	return []uart.Option{
		uart.WithLogger(logger),
		uart.WithDeviceDir(s.Devices.Dir),
		uart.WithModemPrefix(s.Devices.ModemPrefix),
		uart.WithUARTSuffix(s.Devices.UARTSuffix),
		uart.WithByIDDir(s.Devices.ByIDDir),
		uart.WithLibraryName(s.Library.Name),
		uart.WithLibraryGlobs(s.Library.Globs...),
		uart.WithUdevadm(s.Udevadm),
	}
}

func (s settings) baudRules() session.BaudRules {
	return session.BaudRules{Rules: s.Baud.Rules, Default: s.Baud.Default}
}

func (s settings) terminal() session.Terminal {
	term := session.DefaultTerminal()
	if s.Terminal.Program != "" {
		term.Program = s.Terminal.Program
	}
	return term
}

// setup loads settings and builds the logger and enumerator shared by all
// commands
func setup() (settings, zerolog.Logger, *uart.Enumerator, error) {
	s, err := loadSettings()
	if err != nil {
		return s, zerolog.Nop(), nil, err
	}

	logger, err := s.logger()
	if err != nil {
		return s, zerolog.Nop(), nil, fmt.Errorf("invalid log level: %w", err)
	}

	e, err := uart.NewEnumerator(s.enumeratorOptions(logger)...)
	if err != nil {
		return s, logger, nil, err
	}
	return s, logger, e, nil
}

// discover lists UARTs. A missing device directory means nothing has been
// plugged in since boot and is reported as an empty result.
func discover(cmd *cobra.Command, s settings, e *uart.Enumerator, logger zerolog.Logger) (uart.Result, error) {
	res, err := e.ListDetailed(cmd.Context())
	if missingDir(err, s.Devices.ByIDDir, s.Devices.Dir) {
		logger.Debug().Err(err).Msg("Device directory missing")
		return uart.Result{}, nil
	}
	return res, err
}

// missingDir reports whether err is the failed read of one of dirs
func missingDir(err error, dirs ...string) bool {
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) || !errors.Is(pathErr.Err, fs.ErrNotExist) {
		return false
	}
	for _, dir := range dirs {
		if dir != "" && filepath.Clean(pathErr.Path) == filepath.Clean(dir) {
			return true
		}
	}
	return false
}

func fatal(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render(fmt.Sprintf("Error: "+format, args...)))
	os.Exit(1)
}
