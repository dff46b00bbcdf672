package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig. reads config.{yaml,json,toml} from ./data/ if present. a missing file is not an error.
func ReadConfig(v *viper.Viper) error {
	v.SetConfigName("config")
	v.AddConfigPath("./data/")

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
