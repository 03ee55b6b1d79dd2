package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env            string            `yaml:"env" env-default:"local"`
	DSN            string            `yaml:"dsn" env:"DSN" env-required:"true"`
	MigrationsPath string            `yaml:"migrations_path" env-default:"migrations"`
	HTTP           HTTPConfig        `yaml:"http"`
	FileStorage    FileStorageConfig `yaml:"file_storage"`
	Admin          AdminConfig       `yaml:"admin"`
	Session        SessionConfig     `yaml:"session"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"8080"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"uploads"`
	BaseURL string `yaml:"base_url" env-default:"/uploads"`
	MaxSize int64  `yaml:"max_size"`
}

// AdminConfig — единственная админская учетка. Хэш пароля bcrypt,
// открытый пароль в конфиге не хранится.
type AdminConfig struct {
	Username     string `yaml:"username" env-required:"true"`
	PasswordHash string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH" env-required:"true"`
}

type SessionConfig struct {
	Secret   string        `yaml:"secret" env:"SESSION_SECRET" env-required:"true"`
	TokenTTL time.Duration `yaml:"token_ttl" env-default:"12h"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
