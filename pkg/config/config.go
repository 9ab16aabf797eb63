package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log    LogConfig
	Policy PolicyConfig
	Demo   DemoConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// PolicyConfig toggles the opt-in hardenings of the classroom core.
// Every flag defaults to false so the permissive behaviour is kept.
type PolicyConfig struct {
	RejectDuplicateEnrollment bool
	StrictMaterialRemoval     bool
	StrictTransitions         bool
	EnforceGradeRange         bool
	MinGrade                  int
	MaxGrade                  int
	RequireCourseOwnership    bool
}

// DemoConfig controls the demonstration driver.
type DemoConfig struct {
	ExportFormat string
	ExportDir    string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Policy = PolicyConfig{
		RejectDuplicateEnrollment: v.GetBool("POLICY_REJECT_DUPLICATE_ENROLLMENT"),
		StrictMaterialRemoval:     v.GetBool("POLICY_STRICT_MATERIAL_REMOVAL"),
		StrictTransitions:         v.GetBool("POLICY_STRICT_TRANSITIONS"),
		EnforceGradeRange:         v.GetBool("POLICY_ENFORCE_GRADE_RANGE"),
		MinGrade:                  v.GetInt("POLICY_MIN_GRADE"),
		MaxGrade:                  v.GetInt("POLICY_MAX_GRADE"),
		RequireCourseOwnership:    v.GetBool("POLICY_REQUIRE_COURSE_OWNERSHIP"),
	}
	if cfg.Policy.MaxGrade < cfg.Policy.MinGrade {
		return nil, errors.New("POLICY_MAX_GRADE must not be lower than POLICY_MIN_GRADE")
	}

	cfg.Demo = DemoConfig{
		ExportFormat: strings.ToLower(strings.TrimSpace(v.GetString("DEMO_EXPORT_FORMAT"))),
		ExportDir:    v.GetString("DEMO_EXPORT_DIR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("POLICY_REJECT_DUPLICATE_ENROLLMENT", false)
	v.SetDefault("POLICY_STRICT_MATERIAL_REMOVAL", false)
	v.SetDefault("POLICY_STRICT_TRANSITIONS", false)
	v.SetDefault("POLICY_ENFORCE_GRADE_RANGE", false)
	v.SetDefault("POLICY_MIN_GRADE", 0)
	v.SetDefault("POLICY_MAX_GRADE", 100)
	v.SetDefault("POLICY_REQUIRE_COURSE_OWNERSHIP", false)

	v.SetDefault("DEMO_EXPORT_FORMAT", "")
	v.SetDefault("DEMO_EXPORT_DIR", ".")
}
