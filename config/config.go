// Package config registers every setting with viper and loads the config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mediactl/mediactl/constant"
	"github.com/mediactl/mediactl/filesystem"
	"github.com/mediactl/mediactl/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup binds defaults and environment variables, then reads mediactl.toml from the config
// directory. A missing file is not an error.
func Setup() error {
	viper.SetConfigName(constant.Mediactl)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Mediactl)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// Watch calls onChange with the changed key set each time the config file is rewritten.
// It does nothing when no config file was loaded.
func Watch(onChange func(changed []string)) bool {
	if viper.ConfigFileUsed() == "" {
		return false
	}

	previous := snapshot()
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		current := snapshot()
		var changed []string
		for k, v := range current {
			if previous[k] != v {
				changed = append(changed, k)
			}
		}
		previous = current
		if len(changed) > 0 {
			onChange(changed)
		}
	})
	viper.WatchConfig()
	return true
}

func snapshot() map[string]string {
	values := make(map[string]string, len(Default))
	for k := range Default {
		values[k] = fmt.Sprint(viper.Get(k))
	}
	return values
}
