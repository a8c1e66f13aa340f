package config

import (
	"os"

	"github.com/adrg/xdg"
	"github.com/depot/shredder/pkg/assist"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const DefaultListen = ":8080"

func NewConfig() error {
	configPath, err := xdg.ConfigFile("shredder/shredder.yaml")
	if err != nil {
		return err
	}

	viper.SetConfigFile(configPath)
	viper.SetEnvPrefix("SHREDDER")
	viper.AutomaticEnv()

	viper.SetDefault("language", "go")
	viper.SetDefault("openai_model", assist.DefaultModel)
	viper.SetDefault("openai_base_url", assist.DefaultBaseURL)
	viper.SetDefault("listen", DefaultListen)

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if the config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return errors.Wrap(err, "unable to read config file")
		}
	}
	return nil
}

func GetLanguage() string {
	return viper.GetString("language")
}

func GetOpenAIKey() string {
	return viper.GetString("openai_api_key")
}

func GetOpenAIModel() string {
	return viper.GetString("openai_model")
}

func GetOpenAIBaseURL() string {
	return viper.GetString("openai_base_url")
}

func GetListen() string {
	return viper.GetString("listen")
}

func writeConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return errors.New("no config file set")
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.OpenFile(configFile, os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		f.Close()
	} else if err == nil {
		if err := os.Chmod(configFile, 0600); err != nil {
			return err
		}
	}

	return viper.WriteConfig()
}

func SetLanguage(language string) error {
	viper.Set("language", language)
	return writeConfig()
}

func SetOpenAIKey(key string) error {
	viper.Set("openai_api_key", key)
	return writeConfig()
}

func SetOpenAIModel(model string) error {
	viper.Set("openai_model", model)
	return writeConfig()
}

func ClearOpenAIKey() error {
	viper.Set("openai_api_key", "")
	return writeConfig()
}
