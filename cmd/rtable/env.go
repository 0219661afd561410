package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const globalPrefix = "rtable"

var errorMessagePrefix = "error mapping environment variables to command flags"

func envViper(prefix string) *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix(prefix)
	return v
}

// checkEnvironmentVariables sets every flag the user did not pass from the
// environment: RTABLE_<FLAG> for flags inherited from the root command and
// RTABLE_<COMMAND>_<FLAG> for the command's own flags.
func checkEnvironmentVariables(command *cobra.Command) error {
	var errs []string
	global := envViper(globalPrefix)
	local := global
	if command.HasParent() {
		local = envViper(fmt.Sprintf("%s_%s", globalPrefix, command.Name()))
	}
	inherited := command.InheritedFlags()
	command.Flags().VisitAll(func(f *pflag.Flag) {
		v := local
		if inherited.Lookup(f.Name) != nil {
			v = global
		}
		configName := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(configName) {
			if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(configName))); err != nil {
				errs = append(errs, err.Error())
			}
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}
