package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigEnv overrides the config file location.
const ConfigEnv = "SYNATRA_CONFIG"

// Section is the root key this SDK reads in a shared config file.
const Section = "synatra"

var noSuchFile = "no such file"
var notFoundIn = "not found in"

// Config holds the client session settings.
type Config struct {
	// Ledger RPC endpoint
	RpcUrl string `yaml:"rpc_url" mapstructure:"rpc_url"`
	// Base URL of the claims web API
	ClaimsApiUrl string `yaml:"claims_api_url" mapstructure:"claims_api_url"`
	// Optional override of the staking program id (test validators, forks)
	ProgramId string `yaml:"program_id" mapstructure:"program_id"`
	// Price per compute unit in microlamports attached to submitted transactions
	PriorityFee uint64 `yaml:"priority_fee" mapstructure:"priority_fee"`
	// Log swallowed pool-fetch failures at debug level
	Logging bool `yaml:"logging" mapstructure:"logging"`
}

// DefaultConfig targets the public mainnet deployment.
func DefaultConfig() Config {
	return Config{
		RpcUrl:       "https://api.mainnet-beta.solana.com",
		ClaimsApiUrl: "https://api.synatra.xyz",
	}
}

func getViper() *viper.Viper {
	// new instance of viper to avoid conflicts with the host application
	v := viper.New()
	// config file is config.yaml
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// If the config location env is set, use that.
	v.SetConfigFile(os.Getenv(ConfigEnv))

	// otherwise, prioritize current path or parent
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	// Lastly, check home dir
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, "."+Section))
	}

	return v
}

// Load reads the configuration from config.yaml (or the file named by
// SYNATRA_CONFIG). A "synatra" section is used as root when present, so the
// SDK can share a config file with the host application. Defaults apply when
// no config file exists.
func Load() (Config, error) {
	cfg := DefaultConfig()
	v := getViper()
	err := v.ReadInConfig()
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, noSuchFile) || strings.Contains(msg, notFoundIn) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("fatal error reading config file: %w", err)
	}
	if section := v.GetStringMap(Section); len(section) > 0 {
		// viper does not support partial deserialization so we
		// have to re-serialize and parse again
		bz, err := yaml.Marshal(section)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(bz, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
