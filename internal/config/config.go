package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string  `yaml:"version" json:"version"`
	Server  Server  `yaml:"server" json:"server"`
	Storage Storage `yaml:"storage" json:"storage"`
	UI      UI      `yaml:"ui" json:"ui"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

type Storage struct {
	DataDir   string `yaml:"data_dir" json:"data_dir"`
	StaticDir string `yaml:"static_dir" json:"static_dir"`
}

type UI struct {
	// Locale selects the display string table: "es" or "en".
	Locale string `yaml:"locale" json:"locale"`
	// WeeklyMaxTasks caps how many tasks one day shows in the weekly view.
	WeeklyMaxTasks int `yaml:"weekly_max_tasks" json:"weekly_max_tasks"`
	// RolloverOnStartup runs the incomplete-task migration once at boot.
	RolloverOnStartup bool `yaml:"rollover_on_startup" json:"rollover_on_startup"`
}

func Default() *Config {
	return &Config{
		Version: "1.0",
		Server:  Server{Addr: ":8714"},
		Storage: Storage{DataDir: "data", StaticDir: "static"},
		UI: UI{
			Locale:            "es",
			WeeklyMaxTasks:    5,
			RolloverOnStartup: true,
		},
	}
}

func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = d.Storage.DataDir
	}
	if c.Storage.StaticDir == "" {
		c.Storage.StaticDir = d.Storage.StaticDir
	}
	if c.UI.Locale == "" {
		c.UI.Locale = d.UI.Locale
	}
	if c.UI.WeeklyMaxTasks <= 0 {
		c.UI.WeeklyMaxTasks = d.UI.WeeklyMaxTasks
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	c.applyEnv()
	return &c, nil
}

// LoadOrDefault falls back to defaults (plus env overrides) when the config
// file is absent.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if err == nil {
		return c, nil
	}
	if os.IsNotExist(err) {
		c := Default()
		c.applyEnv()
		return c, nil
	}
	return nil, err
}

// Environment overrides take precedence over the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("MYTASKS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("MYTASKS_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("MYTASKS_LOCALE"); v != "" {
		c.UI.Locale = v
	}
	if v := os.Getenv("MYTASKS_ROLLOVER_ON_STARTUP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.RolloverOnStartup = b
		}
	}
}
