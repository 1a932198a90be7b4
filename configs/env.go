package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Env struct {
	DatabaseURL    string `validate:"required"`
	AllowedOrigins string
	OriginURL      string `validate:"omitempty,url"`
	Port           string `validate:"required,numeric"`
	StoreURL       string `validate:"required,url"`
	WebPort        string `validate:"required,numeric"`
	UIConfig       string `validate:"omitempty,filepath"`
	LogFile        string
}

// LoadEnv reads the given dotenv files into the process environment. With no
// arguments it reads ".env" when the file exists.
func LoadEnv(filenames ...string) (Env, error) {
	if len(filenames) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	} else if err := godotenv.Load(filenames...); err != nil {
		return Env{}, err
	}

	env := Env{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: getenv("ALLOWED_ORIGINS", "*"),
		OriginURL:      os.Getenv("ORIGIN_URL"),
		Port:           getenv("PORT", "5001"),
		StoreURL:       getenv("STORE_URL", "http://localhost:5001"),
		WebPort:        getenv("WEB_PORT", "8080"),
		UIConfig:       os.Getenv("UI_CONFIG"),
		LogFile:        os.Getenv("TODO_LOG_FILE"),
	}

	return env, nil
}

// StoreFields are the variables the todo API server needs.
var StoreFields = []string{"DatabaseURL", "OriginURL", "Port"}

// ClientFields are the variables the web and terminal front-ends need.
var ClientFields = []string{"StoreURL", "WebPort", "UIConfig"}

func (e Env) Check(validate *validator.Validate, fields ...string) error {
	if err := validate.StructPartial(e, fields...); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
