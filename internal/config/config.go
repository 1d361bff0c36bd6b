package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds all runtime configuration, sourced from environment
// variables with sensible defaults.
type Settings struct {
	APIURL         string
	CSVPath        string
	GeminiAPIKey   string
	GeminiModel    string
	IconURL        string
	ReportPath     string
	OutputDir      string
	DBPath         string
	RequestTimeout time.Duration
	WrapWidth      int
}

// Load reads settings from the environment
func Load() Settings {
	v := viper.New()
	v.SetDefault("API_URL", "https://usersapipython.up.railway.app")
	v.SetDefault("CSV_PATH", "data/users_ids.csv")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("ICON_URL", "https://digitalinnovationone.github.io/santander-dev-week-2023-api/icons/credit.svg")
	v.SetDefault("REPORT_PATH", "report_etl.csv")
	v.SetDefault("OUTPUT_DIR", "output")
	v.SetDefault("DB_PATH", "etl.db")
	v.SetDefault("TIMEOUT_SEC", 20)
	v.SetDefault("WRAP_NEWS_WIDTH", 75)
	v.AutomaticEnv()

	return Settings{
		APIURL:         strings.TrimRight(v.GetString("API_URL"), "/"),
		CSVPath:        v.GetString("CSV_PATH"),
		GeminiAPIKey:   v.GetString("GEMINI_API_KEY"),
		GeminiModel:    v.GetString("GEMINI_MODEL"),
		IconURL:        v.GetString("ICON_URL"),
		ReportPath:     v.GetString("REPORT_PATH"),
		OutputDir:      v.GetString("OUTPUT_DIR"),
		DBPath:         v.GetString("DB_PATH"),
		RequestTimeout: time.Duration(v.GetInt("TIMEOUT_SEC")) * time.Second,
		WrapWidth:      v.GetInt("WRAP_NEWS_WIDTH"),
	}
}
