// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/internal/version"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "beetled.conf"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "beetled.log"
	defaultBanDuration    = time.Hour * 24
	defaultBanThreshold   = 100
	defaultMaxPeers       = 125
)

var (
	defaultHomeDir    = appDataDir("beetled")
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(defaultHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// config defines the configuration options for beetled.
//
// See loadConfig for details on the configuration load process.
type config struct {
	// General application behavior.
	ShowVersion   bool   `short:"V" long:"version" description:"Display version information and exit"`
	HomeDir       string `short:"A" long:"appdata" description:"Path to application home directory"`
	ConfigFile    string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir       string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir        string `long:"logdir" description:"Directory to log output"`
	NoFileLogging bool   `long:"nofilelogging" description:"Disable file logging"`
	DebugLevel    string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`

	// Network selection.
	TestNet bool `long:"testnet" description:"Use the test network"`
	RegNet  bool `long:"regtest" description:"Use the regression test network"`

	// Peer misbehavior.
	DisableBanning bool          `long:"nobanning" description:"Disable banning of misbehaving peers"`
	BanDuration    time.Duration `long:"banduration" description:"How long to ban misbehaving peers.  Valid time units are {s, m, h}.  Minimum 1 second"`
	BanThreshold   uint32        `long:"banthreshold" description:"Maximum allowed ban score before disconnecting and banning misbehaving peers."`

	// Masternode.
	LiteMode           bool   `long:"litemode" description:"Disable the processing of masternode messages"`
	Masternode         bool   `long:"masternode" description:"Run a masternode that votes for the payees of upcoming blocks"`
	MasternodePrivKey  string `long:"masternodeprivkey" description:"Hex encoded private key of the masternode"`
	MasternodeOutpoint string `long:"masternodeoutpoint" description:"Collateral outpoint of the masternode in the form txid:index"`

	// Block reward schedule.  It has no default and must be provided.
	BlockOneSubsidy       int64  `long:"blockonesubsidy" description:"Block value of height 1 in atoms"`
	BaseSubsidy           int64  `long:"basesubsidy" description:"Starting block value in atoms (required)"`
	SubsidyMultiplier     int64  `long:"subsidymultiplier" description:"Multiplier applied to the block value every subsidyinterval blocks"`
	SubsidyDivisor        int64  `long:"subsidydivisor" description:"Divisor applied to the block value every subsidyinterval blocks"`
	SubsidyInterval       int64  `long:"subsidyinterval" description:"Number of blocks between two block value reductions (0 keeps the block value constant)"`
	MasternodeProportions string `long:"mnproportions" description:"Comma separated percentages of the block value paid to the masternodes of tiers 1, 2 and 3"`
	TreasuryProportion    uint16 `long:"treasuryproportion" description:"Percentage of every block value accrued by the treasury"`

	// Metrics.
	MetricsListen string `long:"metricslisten" description:"Interface/port to serve prometheus metrics on (e.g. 127.0.0.1:9142)"`

	// The following fields are set by loadConfig.
	params       *chaincfg.Params
	mnKey        *secp256k1.PrivateKey
	mnOutpoint   btcwire.OutPoint
	configLoaded bool
}

// errSuppressUsage signifies that an error that happened during the initial
// configuration phase should suppress the usage output since it was not caused
// by the user.
type errSuppressUsage string

// Error implements the error interface.
func (e errSuppressUsage) Error() string {
	return string(e)
}

// appDataDir returns the default application data directory of the operating
// system for the passed application name.
func appDataDir(appName string) string {
	appName = strings.TrimPrefix(appName, ".")
	if appName == "" {
		return "."
	}
	titled := strings.ToUpper(appName[:1]) + appName[1:]
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return filepath.Join(appData, titled)
		}
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", titled)
	}
	return filepath.Join(homeDir, "."+appName)
}

// cleanAndExpandPath expands environment variables and leading ~ in the passed
// path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = strings.Replace(path, "~", homeDir, 1)
		}
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// netName returns the name of the data and log subdirectory of the network.
func netName(params *chaincfg.Params) string {
	switch params.ID {
	case chaincfg.NetTestNet:
		return "testnet"
	case chaincfg.NetRegTest:
		return "regtest"
	}
	return "mainnet"
}

// parseOutpoint parses an outpoint in the form txid:index.
func parseOutpoint(s string) (btcwire.OutPoint, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return btcwire.OutPoint{}, fmt.Errorf("outpoint %q is not in the "+
			"form txid:index", s)
	}
	hash, err := chainhash.NewHashFromStr(parts[0])
	if err != nil {
		return btcwire.OutPoint{}, fmt.Errorf("invalid outpoint txid: %w", err)
	}
	index, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return btcwire.OutPoint{}, fmt.Errorf("invalid outpoint index: %w", err)
	}
	return btcwire.OutPoint{Hash: *hash, Index: uint32(index)}, nil
}

// parseProportions parses up to three comma separated masternode tier
// percentages.  Tier 0 is never paid.
func parseProportions(s string) ([4]uint16, error) {
	var proportions [4]uint16
	if s == "" {
		return proportions, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > len(proportions)-1 {
		return proportions, fmt.Errorf("%d masternode proportions given "+
			"for %d tiers", len(parts), len(proportions)-1)
	}
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 16)
		if err != nil {
			return proportions, fmt.Errorf("invalid masternode "+
				"proportion %q: %w", part, err)
		}
		proportions[i+1] = uint16(v)
	}
	return proportions, nil
}

// rewardSchedule returns the validated block reward schedule of the config.
func (cfg *config) rewardSchedule() (chaincfg.RewardSchedule, error) {
	proportions, err := parseProportions(cfg.MasternodeProportions)
	if err != nil {
		return chaincfg.RewardSchedule{}, err
	}
	r := chaincfg.RewardSchedule{
		BlockOneSubsidy:       cfg.BlockOneSubsidy,
		BaseSubsidy:           cfg.BaseSubsidy,
		MulSubsidy:            cfg.SubsidyMultiplier,
		DivSubsidy:            cfg.SubsidyDivisor,
		ReductionInterval:     cfg.SubsidyInterval,
		MasternodeProportions: proportions,
		TreasuryProportion:    cfg.TreasuryProportion,
	}
	if err := r.Validate(); err != nil {
		return chaincfg.RewardSchedule{}, err
	}
	return r, nil
}

// newConfigParser returns a new command line flags parser.
func newConfigParser(cfg *config, options flags.Options) *flags.Parser {
	return flags.NewParser(cfg, options)
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in beetled functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options.  Command line options always take
// precedence.
func loadConfig(appName string) (*config, []string, error) {
	// Default config.
	cfg := config{
		HomeDir:      defaultHomeDir,
		ConfigFile:   defaultConfigFile,
		DataDir:      defaultDataDir,
		LogDir:       defaultLogDir,
		DebugLevel:   defaultLogLevel,
		BanDuration:  defaultBanDuration,
		BanThreshold: defaultBanThreshold,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.  Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := cfg
	preParser := newConfigParser(&preCfg, flags.HelpFlag)
	_, err := preParser.Parse()
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
	}

	// Show the version and exit if the version flag was specified.
	if preCfg.ShowVersion {
		fmt.Printf("%s version %s (Go version %s %s/%s)\n", appName,
			version.String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	// Update the home directory and the paths derived from it when it was
	// specified.
	if preCfg.HomeDir != defaultHomeDir {
		cfg.HomeDir = cleanAndExpandPath(preCfg.HomeDir)
		if preCfg.ConfigFile == defaultConfigFile {
			cfg.ConfigFile = filepath.Join(cfg.HomeDir, defaultConfigFilename)
		} else {
			cfg.ConfigFile = cleanAndExpandPath(preCfg.ConfigFile)
		}
		if preCfg.DataDir == defaultDataDir {
			cfg.DataDir = filepath.Join(cfg.HomeDir, defaultDataDirname)
		}
		if preCfg.LogDir == defaultLogDir {
			cfg.LogDir = filepath.Join(cfg.HomeDir, defaultLogDirname)
		}
	} else if preCfg.ConfigFile != defaultConfigFile {
		cfg.ConfigFile = cleanAndExpandPath(preCfg.ConfigFile)
	}

	// Load additional config from file.
	var configFileError error
	parser := newConfigParser(&cfg, flags.Default)
	err = flags.NewIniParser(parser).ParseFile(cfg.ConfigFile)
	if err != nil {
		var e *os.PathError
		if !errors.As(err, &e) {
			err := fmt.Errorf("error parsing config file: %w", err)
			return nil, nil, err
		}
		configFileError = err
	} else {
		cfg.configLoaded = true
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.Parse()
	if err != nil {
		return nil, nil, err
	}

	// Multiple networks can't be selected simultaneously.
	cfg.params = chaincfg.MainNetParams()
	numNets := 0
	if cfg.TestNet {
		numNets++
		cfg.params = chaincfg.TestNetParams()
	}
	if cfg.RegNet {
		numNets++
		cfg.params = chaincfg.RegNetParams()
	}
	if numNets > 1 {
		str := "%s: the testnet and regtest params can't be used together " +
			"-- choose one of the two"
		return nil, nil, fmt.Errorf(str, "loadConfig")
	}

	// Append the network type to the data and log directories so they are
	// "namespaced" per network.
	cfg.DataDir = filepath.Join(cleanAndExpandPath(cfg.DataDir),
		netName(cfg.params))
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfg.LogDir),
		netName(cfg.params))

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		os.Exit(0)
	}

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	if !cfg.NoFileLogging {
		initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", "loadConfig", err)
	}

	if cfg.BanDuration < time.Second {
		str := "%s: the banduration option may not be less than 1s -- " +
			"parsed [%v]"
		return nil, nil, fmt.Errorf(str, "loadConfig", cfg.BanDuration)
	}

	// The network presets carry no block reward schedule, so it must be
	// configured.
	rewards, err := cfg.rewardSchedule()
	if err != nil {
		str := "%s: invalid block reward schedule: %w -- the basesubsidy " +
			"option is required"
		return nil, nil, fmt.Errorf(str, "loadConfig", err)
	}
	cfg.params.Rewards = rewards

	// A masternode needs both its key and its collateral.
	if cfg.Masternode {
		if cfg.LiteMode {
			str := "%s: the masternode and litemode options can't be used " +
				"together"
			return nil, nil, fmt.Errorf(str, "loadConfig")
		}
		if cfg.MasternodePrivKey == "" || cfg.MasternodeOutpoint == "" {
			str := "%s: the masternode option requires masternodeprivkey " +
				"and masternodeoutpoint"
			return nil, nil, fmt.Errorf(str, "loadConfig")
		}
		keyBytes, err := hex.DecodeString(cfg.MasternodePrivKey)
		if err != nil || len(keyBytes) != secp256k1.PrivKeyBytesLen {
			str := "%s: masternodeprivkey is not a hex encoded %d byte key"
			return nil, nil, fmt.Errorf(str, "loadConfig",
				secp256k1.PrivKeyBytesLen)
		}
		cfg.mnKey = secp256k1.PrivKeyFromBytes(keyBytes)
		cfg.mnOutpoint, err = parseOutpoint(cfg.MasternodeOutpoint)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", "loadConfig", err)
		}
	}

	// Warn about missing config file only after all other configuration is
	// done.  This prevents the warning on help messages and invalid
	// options.  Note this should go directly before the return.
	if configFileError != nil {
		beetLog.Warnf("%v", configFileError)
	}

	return &cfg, remainingArgs, nil
}
