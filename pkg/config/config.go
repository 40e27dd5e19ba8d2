package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Security SecurityConfig
	Seed     SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de SQLite. Path es el único archivo de persistencia.
type DBConfig struct {
	Path          string
	BusyTimeoutMS int
	MaxOpenConns  int
}

// DSN devuelve el connection string de modernc.org/sqlite con los pragmas de la plataforma:
// claves foráneas activas, WAL y transacciones de escritura inmediatas.
func (c DBConfig) DSN() string {
	busy := c.BusyTimeoutMS
	if busy <= 0 {
		busy = 5000
	}
	return fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
		c.Path, busy,
	)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecurityConfig esquema de hash de contraseñas: "sha256" (compatible con datos existentes) o "bcrypt".
type SecurityConfig struct {
	PasswordScheme string
}

// SeedConfig contraseña y email de la cuenta reservada "admin", usados solo al crearla.
type SeedConfig struct {
	AdminPassword string
	AdminEmail    string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_PATH, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "bcs-blackbox"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Path:          getString(v, "DB_PATH", "bcs_system.db"),
			BusyTimeoutMS: getInt(v, "DB_BUSY_TIMEOUT_MS", 5000),
			MaxOpenConns:  getInt(v, "DB_MAX_OPEN_CONNS", 4),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "bcs-blackbox"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Security: SecurityConfig{
			PasswordScheme: strings.ToLower(getString(v, "PASSWORD_SCHEME", "sha256")),
		},
		Seed: SeedConfig{
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", "admin123"),
			AdminEmail:    getString(v, "SEED_ADMIN_EMAIL", "admin@bcs.com"),
		},
	}

	if cfg.Security.PasswordScheme != "sha256" && cfg.Security.PasswordScheme != "bcrypt" {
		return nil, fmt.Errorf("config: PASSWORD_SCHEME inválido %q (use sha256 o bcrypt)", cfg.Security.PasswordScheme)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
