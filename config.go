package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Options is the resolved configuration for one invocation.
type Options struct {
	Quiet         bool
	Verbose       bool
	IgnoreEngine  string
	NoIgnore      bool
	LanguagesFile string
	Tokens        bool
	TokenModel    string
	ShowTree      bool
	Interactive   bool
}

// bindFlags defines the root command flags and binds them to v.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()

	flags.BoolP("quiet", "q", false, "Suppress the included/excluded file listing")
	v.BindPFlag("quiet", flags.Lookup("quiet"))
	flags.BoolP("verbose", "v", false, "Log debug details to stderr")
	v.BindPFlag("verbose", flags.Lookup("verbose"))

	flags.String("ignore-engine", engineGit, "Ignore rule matcher: git, index or none")
	v.BindPFlag("ignore_engine", flags.Lookup("ignore-engine"))
	flags.Bool("no-ignore", false, "Don't respect the .gitignore file")
	v.BindPFlag("no_ignore", flags.Lookup("no-ignore"))

	flags.String("languages", "", "Path to a languages.yml used for code fence tags")
	v.BindPFlag("languages_file", flags.Lookup("languages"))

	flags.Bool("tokens", false, "Count tokens in the document (may download encodings)")
	v.BindPFlag("tokens", flags.Lookup("tokens"))
	flags.String("model", defaultTiktokenModel, "Model whose tokenizer is used with --tokens")
	v.BindPFlag("token_model", flags.Lookup("model"))

	flags.Bool("show-tree", false, "Print the tree of included files to stderr")
	v.BindPFlag("show_tree", flags.Lookup("show-tree"))
	flags.BoolP("interactive", "i", false, "Pick files from the matches with a fuzzy finder")
	v.BindPFlag("interactive", flags.Lookup("interactive"))

	v.SetDefault("ignore_engine", engineGit)
	v.SetDefault("token_model", defaultTiktokenModel)
}

// readConfig reads the config file and SPITBALL_* environment variables
// into v and returns the file used. A missing config file is not an error.
// Only an explicit --config file is fatal when it cannot be read; a broken
// auto-discovered file is returned as warn and the defaults stay in effect.
func readConfig(v *viper.Viper, cfgFile string) (used string, warn, err error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// The working directory is the tree being scanned, so it is never
		// searched for a config file.
		if home, herr := os.UserHomeDir(); herr == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}
	bindEnv(v)

	if rerr := v.ReadInConfig(); rerr != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(rerr, &notFound) {
			return "", nil, nil
		}
		rerr = fmt.Errorf("error reading config file: %w", rerr)
		if cfgFile != "" {
			return "", nil, rerr
		}
		return "", rerr, nil
	}
	return v.ConfigFileUsed(), nil, nil
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// loadOptions resolves v into Options and validates it.
func loadOptions(v *viper.Viper) (Options, error) {
	opts := Options{
		Quiet:         v.GetBool("quiet"),
		Verbose:       v.GetBool("verbose"),
		IgnoreEngine:  strings.ToLower(v.GetString("ignore_engine")),
		NoIgnore:      v.GetBool("no_ignore"),
		LanguagesFile: v.GetString("languages_file"),
		Tokens:        v.GetBool("tokens"),
		TokenModel:    v.GetString("token_model"),
		ShowTree:      v.GetBool("show_tree"),
		Interactive:   v.GetBool("interactive"),
	}

	switch opts.IgnoreEngine {
	case engineGit, engineIndex, engineNone:
	default:
		return opts, fmt.Errorf("unsupported ignore engine %q: use %s, %s or %s",
			opts.IgnoreEngine, engineGit, engineIndex, engineNone)
	}
	if opts.NoIgnore {
		opts.IgnoreEngine = engineNone
	}
	return opts, nil
}
