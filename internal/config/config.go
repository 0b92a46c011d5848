package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/homeroom/internal/loader"
)

// EnvPrefix prefixes every environment variable, e.g. HOMEROOM_DATAURL.
const EnvPrefix = "HOMEROOM"

// Config is the resolved runtime configuration.
type Config struct {
	DataURL  string        `mapstructure:"dataURL" validate:"required"`
	StateDir string        `mapstructure:"stateDir" validate:"required"`
	Class    string        `mapstructure:"class"`
	Addr     string        `mapstructure:"addr" validate:"required,hostname_port"`
	DataFile string        `mapstructure:"dataFile" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
	LogFile  string        `mapstructure:"logFile"`
	Theme    string        `mapstructure:"theme" validate:"oneof=classic neon mono"`
	Debug    bool          `mapstructure:"debug"`
}

var validate = validator.New()

// New returns a viper instance with defaults, the optional .env file in dir
// and HOMEROOM_* environment variables applied.
func New(dir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("dataURL", loader.DefaultURL)
	v.SetDefault("stateDir", defaultStateDir())
	v.SetDefault("class", "")
	v.SetDefault("addr", ":8080")
	v.SetDefault("dataFile", "data.json")
	v.SetDefault("timeout", 5*time.Second)
	v.SetDefault("logFile", "")
	v.SetDefault("theme", "classic")
	v.SetDefault("debug", false)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "config.godotenv(%s)", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "config.os.Stat(%s)", dotEnvPath)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v, nil
}

// Resolve reads v into a Config and validates it.
func Resolve(v *viper.Viper) (Config, error) {
	cfg := Config{
		DataURL:  v.GetString("dataURL"),
		StateDir: v.GetString("stateDir"),
		Class:    v.GetString("class"),
		Addr:     v.GetString("addr"),
		DataFile: v.GetString("dataFile"),
		Timeout:  v.GetDuration("timeout"),
		LogFile:  v.GetString("logFile"),
		Theme:    v.GetString("theme"),
		Debug:    v.GetBool("debug"),
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".homeroom"
	}
	return filepath.Join(home, ".homeroom")
}
