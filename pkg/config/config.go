package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every knob the exporter needs. Endpoints, the output path and
// the client identification strings are injectable so tests can point the
// network boundary at a double.
type Config struct {
	AuthURL    string `mapstructure:"auth_url"`
	GraphQLURL string `mapstructure:"graphql_url"`

	OutputPath string        `mapstructure:"output"`
	PageSize   int           `mapstructure:"page_size"`
	Timeout    time.Duration `mapstructure:"http_timeout"`

	// Client identification constants expected by the card API. The auth
	// endpoint and the GraphQL endpoint are served by different app
	// versions, hence the two header pairs.
	AuthUserAgent string `mapstructure:"auth_user_agent"`
	AuthClient    string `mapstructure:"auth_client"`
	APIUserAgent  string `mapstructure:"api_user_agent"`
	APIClient     string `mapstructure:"api_client"`

	OAuthClientID string `mapstructure:"oauth_client_id"`
	DeviceLabel   string `mapstructure:"device_label"`

	AccountName        string `mapstructure:"account_name"`
	AccountDescription string `mapstructure:"account_description"`
}

// Build loads configuration from defaults, an optional YAML config file and
// flag overrides, in that order of increasing precedence.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("auth_url", "https://api.robinhood.com/creditcard/auth/login/")
	v.SetDefault("graphql_url", "https://api.robinhood.com/creditcard/graphql")
	v.SetDefault("output", "./rh-cc-transactions.qif")
	v.SetDefault("page_size", 40)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("auth_user_agent", "Robinhood Credit Card/1.50.3 (iOS 18.1.1;)")
	v.SetDefault("auth_client", "mobile-app-rh@1.50.3")
	v.SetDefault("api_user_agent", "rhcardapp/1.35.0 CFNetwork/1498.700.2 Darwin/23.6.0")
	v.SetDefault("api_client", "mobile-app-rh@1.35.0")
	v.SetDefault("oauth_client_id", "r1kKjKccs94gOZBJK1P4Z5JyLnBK4lFx6kI5aKkh")
	v.SetDefault("device_label", "iPhone - iPhone 15")
	v.SetDefault("account_name", "RH Gold")
	v.SetDefault("account_description", "RH Gold credit card")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// The config file is optional when not named explicitly.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if flags != nil {
		if f := flags.Lookup("output"); f != nil {
			if err := v.BindPFlag("output", f); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
