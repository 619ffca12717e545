package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/armon/go-metrics"
	"github.com/pressly/lg"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Bind        string `toml:"bind"`
	MaxProcs    int    `toml:"max_procs"`
	LogLevel    string `toml:"log_level"`
	CacheMaxAge int    `toml:"cache_max_age"`
	Profiler    bool   `toml:"profiler"`

	// [library]
	Library struct {
		Path string `toml:"path"`
	} `toml:"library"`

	// [preview]
	Preview struct {
		Quality  int  `toml:"quality"`
		HalfSize bool `toml:"half_size"`
		MaxWidth int  `toml:"max_width"`
	} `toml:"preview"`

	// [limits]
	Limits struct {
		MaxRequests    int `toml:"max_requests"`
		BacklogSize    int `toml:"backlog_size"`
		RequestTimeout time.Duration
		BacklogTimeout time.Duration

		RequestTimeoutStr string `toml:"request_timeout"`
		BacklogTimeoutStr string `toml:"backlog_timeout"`
	} `toml:"limits"`

	// [statsd]
	StatsD struct {
		Enabled     bool   `toml:"enabled"`
		Address     string `toml:"address"`
		ServiceName string `toml:"service_name"`
	} `toml:"statsd"`
}

var (
	ErrNoConfigFile  = errors.New("no configuration file specified")
	ErrNoLibraryPath = errors.New("no photo library path configured")

	DefaultConfig = Config{}
)

func init() {
	cf := Config{
		Bind:        "0.0.0.0:4446",
		MaxProcs:    -1,
		LogLevel:    "INFO",
		CacheMaxAge: 0,
		Profiler:    false,
	}

	cf.Preview.Quality = 85
	cf.Preview.HalfSize = true
	cf.Preview.MaxWidth = 8192

	cf.Limits.MaxRequests = 1000
	cf.Limits.BacklogSize = 5000
	cf.Limits.RequestTimeout = 45 * time.Second
	cf.Limits.BacklogTimeout = 1500 * time.Millisecond

	DefaultConfig = cf
}

func NewConfig() *Config {
	cf := DefaultConfig
	return &cf
}

func NewConfigFromFile(confFile string, confEnv string) (*Config, error) {
	var err error

	if confFile == "" {
		confFile = confEnv
	}
	if _, err = os.Stat(confFile); os.IsNotExist(err) {
		return nil, ErrNoConfigFile
	}

	cf := NewConfig()

	if _, err = toml.DecodeFile(confFile, &cf); err != nil {
		return nil, err
	}
	return cf, nil
}

func (cf *Config) Apply() (err error) {
	// runtime
	if cf.MaxProcs <= 0 {
		cf.MaxProcs = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(cf.MaxProcs)

	// logging
	if lg.DefaultLogger == nil {
		lg.DefaultLogger = logrus.New()
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(cf.LogLevel))
	if err != nil {
		return err
	}
	lg.DefaultLogger.SetLevel(lvl)
	logrus.SetLevel(lvl)

	// library
	if cf.Library.Path == "" {
		return ErrNoLibraryPath
	}
	if cf.Library.Path, err = filepath.Abs(cf.Library.Path); err != nil {
		return err
	}
	if fi, err := os.Stat(cf.Library.Path); err != nil || !fi.IsDir() {
		return fmt.Errorf("photo library path %s is not a directory", cf.Library.Path)
	}

	// limits
	if cf.Limits.RequestTimeoutStr != "" {
		to, err := time.ParseDuration(cf.Limits.RequestTimeoutStr)
		if err != nil {
			return err
		}
		cf.Limits.RequestTimeout = to
	}
	if cf.Limits.BacklogTimeoutStr != "" {
		to, err := time.ParseDuration(cf.Limits.BacklogTimeoutStr)
		if err != nil {
			return err
		}
		cf.Limits.BacklogTimeout = to
	}

	return nil
}

func (cf *Config) SetupStatsD() error {
	if cf.StatsD.Enabled {
		sink, err := metrics.NewStatsdSink(cf.StatsD.Address)
		if err != nil {
			return err
		}

		config := &metrics.Config{
			ServiceName:          cf.StatsD.ServiceName,
			EnableHostname:       true,
			EnableRuntimeMetrics: true,
			EnableTypePrefix:     false,
			TimerGranularity:     time.Millisecond,
			ProfileInterval:      time.Second * 60,
		}
		config.HostName, _ = os.Hostname()

		if _, err := metrics.NewGlobal(config, sink); err != nil {
			return err
		}
	}
	return nil
}
