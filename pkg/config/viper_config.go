package config

import (
	"time"

	"github.com/apex/log"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ViperConfig layers command line flags over the environment and an
// optional config file. Flags bound with BindFlag win over env vars.
type ViperConfig struct {
	v          *viper.Viper
	configPath string
}

func NewViperConfig() *ViperConfig {
	v := viper.New()
	v.AutomaticEnv()
	return &ViperConfig{v: v}
}

// BindFlag makes key resolve to the flag value when the flag was set on the
// command line.
func (c *ViperConfig) BindFlag(key string, flag *pflag.Flag) error {
	return c.v.BindPFlag(key, flag)
}

func (c *ViperConfig) LoadFromPath(path string) error {
	c.configPath = path
	return c.Load()
}

func (c *ViperConfig) Load() error {
	if c.configPath == "" {
		return nil
	}

	path, err := homedir.Expand(c.configPath)
	if err != nil {
		return err
	}

	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

func (c *ViperConfig) GetKey(key string) string {
	return c.v.GetString(key)
}

func (c *ViperConfig) MustGetKey(key string) string {
	val := c.GetKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (c *ViperConfig) GetKeyWithDefault(key, defaultValue string) string {
	val := c.GetKey(key)
	if val == "" {
		return defaultValue
	}

	return val
}

func (c *ViperConfig) GetIntKey(key string) int {
	return c.v.GetInt(key)
}

func (c *ViperConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	if !c.v.IsSet(key) || c.GetKey(key) == "" {
		return defaultValue
	}

	return c.v.GetInt(key)
}

func (c *ViperConfig) GetDurationKeyWithDefault(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return d
}
