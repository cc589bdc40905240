package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/harness/ar-stats/util/common/errors"
	"github.com/harness/ar-stats/util/common/fileutil"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Summary output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatNone  = "none"
)

// Flag names
const (
	FlagURL             = "artifactory-url"
	FlagUsername        = "username"
	FlagPassword        = "password"
	FlagRepositoryNames = "repository-names"
	FlagInsecure        = "insecure"
	FlagTimeout         = "timeout"
	FlagOutputDir       = "output-dir"
	FlagImagesDir       = "images-dir"
	FlagInclude         = "include"
	FlagExclude         = "exclude"
	FlagSummaryFormat   = "summary-format"
	FlagEnvFile         = "env-file"
	FlagConfig          = "config"
)

// Config is the resolved configuration for one run
type Config struct {
	ArtifactoryURL  string        `mapstructure:"artifactory_url" validate:"required,url"`
	Username        string        `mapstructure:"username" validate:"required"`
	Password        string        `mapstructure:"password" validate:"required"`
	RepositoryNames []string      `mapstructure:"repository_names" validate:"min=1,dive,required"`
	Insecure        bool          `mapstructure:"insecure"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"min=0"`
	OutputDir       string        `mapstructure:"output_dir"`
	ImagesDir       string        `mapstructure:"images_dir"`
	Include         []string      `mapstructure:"include"`
	Exclude         []string      `mapstructure:"exclude"`
	SummaryFormat   string        `mapstructure:"summary_format" validate:"oneof=table json yaml none"`
}

// keys maps viper keys to their flag and the environment variables read for them
var keys = []struct {
	key  string
	flag string
	env  []string
}{
	{"artifactory_url", FlagURL, []string{"ARTIFACTORY_URL"}},
	{"username", FlagUsername, []string{"ARTIFACTORY_USERNAME", "USERNAME"}},
	{"password", FlagPassword, []string{"ARTIFACTORY_PASSWORD", "PASSWORD"}},
	{"repository_names", FlagRepositoryNames, []string{"REPOSITORY_NAMES"}},
	{"insecure", FlagInsecure, []string{"ARTIFACTORY_INSECURE"}},
	{"timeout", FlagTimeout, []string{"ARTIFACTORY_TIMEOUT"}},
	{"output_dir", FlagOutputDir, nil},
	{"images_dir", FlagImagesDir, nil},
	{"include", FlagInclude, nil},
	{"exclude", FlagExclude, nil},
	{"summary_format", FlagSummaryFormat, nil},
}

// RegisterFlags adds the run configuration flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagURL, "", "Artifactory base URL, e.g. https://example.jfrog.io/artifactory")
	fs.String(FlagUsername, "", "Artifactory username")
	fs.String(FlagPassword, "", "Artifactory password or API token")
	fs.StringSlice(FlagRepositoryNames, nil, "Repositories to report on (repeatable or comma separated)")
	fs.Bool(FlagInsecure, true, "Skip TLS certificate verification")
	fs.Duration(FlagTimeout, 0, "Per-request timeout, 0 disables it")
	fs.String(FlagOutputDir, ".", "Directory the .xlsx reports are written to")
	fs.String(FlagImagesDir, "images", "Directory the chart images are written to")
	fs.StringSlice(FlagInclude, nil, "Only keep artifacts whose path matches one of these globs")
	fs.StringSlice(FlagExclude, nil, "Drop artifacts whose path matches one of these globs")
	fs.String(FlagSummaryFormat, FormatTable, "Console summary format: table, json, yaml or none")
	fs.String(FlagEnvFile, ".env", "Environment file loaded before reading variables")
	fs.String(FlagConfig, "", "Optional YAML configuration file")
}

// LoadConfig resolves the configuration from flags, environment, the
// optional config file and defaults, in that order of precedence.
// Positional args are appended to the repository list.
func LoadConfig(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := loadEnvFile(fs); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("insecure", true)
	v.SetDefault("output_dir", ".")
	v.SetDefault("images_dir", "images")
	v.SetDefault("summary_format", FormatTable)

	if path := flagString(fs, FlagConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewFileError(path, "read config", err)
		}
	}

	for _, k := range keys {
		if len(k.env) > 0 {
			if err := v.BindEnv(append([]string{k.key}, k.env...)...); err != nil {
				return nil, fmt.Errorf("error binding env for %s: %w", k.key, err)
			}
		}
		if fs == nil {
			continue
		}
		if f := fs.Lookup(k.flag); f != nil {
			if err := v.BindPFlag(k.key, f); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", k.flag, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing configuration: %w", err)
	}

	cfg.ArtifactoryURL = strings.TrimSpace(cfg.ArtifactoryURL)
	cfg.RepositoryNames = splitList(append(cfg.RepositoryNames, args...))
	cfg.Include = splitList(cfg.Include)
	cfg.Exclude = splitList(cfg.Exclude)
	cfg.SummaryFormat = strings.ToLower(cfg.SummaryFormat)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile reads the env file without overriding variables already set.
// A missing default file is not an error.
func loadEnvFile(fs *pflag.FlagSet) error {
	path := flagString(fs, FlagEnvFile)
	if path == "" {
		return nil
	}
	if !fileutil.Exists(path) {
		if !flagChanged(fs, FlagEnvFile) {
			return nil
		}
		return errors.NewFileError(path, "read env file", os.ErrNotExist)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.NewFileError(path, "read env file", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateConfig checks the required fields and returns one
// ValidationError per failing field, joined
func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, errors.NewValidationError(fieldName(fe.StructField()), message(fe)))
	}
	return errors.Join(errs...)
}

var fieldNames = map[string]string{
	"ArtifactoryURL":  FlagURL,
	"Username":        FlagUsername,
	"Password":        FlagPassword,
	"RepositoryNames": FlagRepositoryNames,
	"Timeout":         FlagTimeout,
	"SummaryFormat":   FlagSummaryFormat,
}

func fieldName(structField string) string {
	if name, ok := fieldNames[structField]; ok {
		return name
	}
	return structField
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "is required"
		}
		return "must not be negative"
	case "url":
		return fmt.Sprintf("%q is not a valid URL", fe.Value())
	case "oneof":
		return fmt.Sprintf("%q must be one of: %s", fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

// splitList splits comma separated entries, trims them and drops blanks
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func flagString(fs *pflag.FlagSet, name string) string {
	if fs == nil || fs.Lookup(name) == nil {
		return ""
	}
	s, _ := fs.GetString(name)
	return s
}

func flagChanged(fs *pflag.FlagSet, name string) bool {
	return fs != nil && fs.Changed(name)
}
