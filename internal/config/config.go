package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/densitymap/internal/area"
	"github.com/sells-group/densitymap/internal/attrs"
	"github.com/sells-group/densitymap/internal/classify"
	"github.com/sells-group/densitymap/internal/density"
	"github.com/sells-group/densitymap/internal/heat"
	"github.com/sells-group/densitymap/internal/loader"
	"github.com/sells-group/densitymap/internal/report"
)

// Config holds the full application configuration.
type Config struct {
	Sources  SourcesConfig  `yaml:"sources" mapstructure:"sources"`
	Fields   FieldsConfig   `yaml:"fields" mapstructure:"fields"`
	Area     AreaConfig     `yaml:"area" mapstructure:"area"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Heat     HeatConfig     `yaml:"heat" mapstructure:"heat"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SourcesConfig locates the two subdistrict datasets.
type SourcesConfig struct {
	Kota        string `yaml:"kota" mapstructure:"kota"`
	Kabupaten   string `yaml:"kabupaten" mapstructure:"kabupaten"`
	TempDir     string `yaml:"temp_dir" mapstructure:"temp_dir"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// FieldsConfig controls how population and name are read from properties.
type FieldsConfig struct {
	Population     []string `yaml:"population" mapstructure:"population"`
	Name           []string `yaml:"name" mapstructure:"name"`
	ScanSubstrings []string `yaml:"scan_substrings" mapstructure:"scan_substrings"`
	ScanFallback   bool     `yaml:"scan_fallback" mapstructure:"scan_fallback"`
	DefaultName    string   `yaml:"default_name" mapstructure:"default_name"`
}

// AreaConfig tunes projected-coordinate detection.
type AreaConfig struct {
	ProjectedThreshold float64 `yaml:"projected_threshold" mapstructure:"projected_threshold"`
	SampleSize         int     `yaml:"sample_size" mapstructure:"sample_size"`
}

// ClassifyConfig configures the choropleth classes.
type ClassifyConfig struct {
	Classes       int      `yaml:"classes" mapstructure:"classes"`
	Palette       []string `yaml:"palette" mapstructure:"palette"`
	FallbackColor string   `yaml:"fallback_color" mapstructure:"fallback_color"`
}

// HeatConfig configures heat weight normalization.
type HeatConfig struct {
	Strategy        string  `yaml:"strategy" mapstructure:"strategy"`
	LowerPercentile float64 `yaml:"lower_percentile" mapstructure:"lower_percentile"`
	UpperPercentile float64 `yaml:"upper_percentile" mapstructure:"upper_percentile"`
	Floor           float64 `yaml:"floor" mapstructure:"floor"`
}

// ReportConfig configures output.
type ReportConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Locale string `yaml:"locale" mapstructure:"locale"`
	TopN   int    `yaml:"top_n" mapstructure:"top_n"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DENSITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sources.kota", "Geojson/Kota_Kecamatan.GeoJSON")
	v.SetDefault("sources.kabupaten", "Geojson/Kabupaten_Kecamatan.GeoJSON")
	v.SetDefault("sources.temp_dir", "")
	v.SetDefault("sources.timeout_secs", int(loader.DefaultTimeout/time.Second))
	v.SetDefault("fields.population", attrs.DefaultPopulationKeys)
	v.SetDefault("fields.name", attrs.DefaultNameKeys)
	v.SetDefault("fields.scan_substrings", attrs.DefaultScanSubstrings)
	v.SetDefault("fields.scan_fallback", true)
	v.SetDefault("fields.default_name", attrs.DefaultName)
	v.SetDefault("area.projected_threshold", area.DefaultProjectedThreshold)
	v.SetDefault("area.sample_size", area.DefaultSampleSize)
	v.SetDefault("classify.classes", classify.DefaultClasses)
	v.SetDefault("classify.palette", classify.DefaultPalette)
	v.SetDefault("classify.fallback_color", classify.DefaultFallbackColor)
	v.SetDefault("heat.strategy", string(heat.StrategyPercentile))
	v.SetDefault("heat.lower_percentile", heat.DefaultLowerPercentile)
	v.SetDefault("heat.upper_percentile", heat.DefaultUpperPercentile)
	v.SetDefault("heat.floor", heat.DefaultFloor)
	v.SetDefault("report.format", string(report.FormatTable))
	v.SetDefault("report.locale", report.DefaultLocale)
	v.SetDefault("report.top_n", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate reports every invalid setting in one error.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Sources.Kota) == "" {
		problems = append(problems, "sources.kota is required")
	}
	if strings.TrimSpace(c.Sources.Kabupaten) == "" {
		problems = append(problems, "sources.kabupaten is required")
	}
	if c.Sources.TimeoutSecs < 0 {
		problems = append(problems, "sources.timeout_secs must be >= 0")
	}
	if c.Area.ProjectedThreshold <= 0 || c.Area.ProjectedThreshold > 1 {
		problems = append(problems, "area.projected_threshold must be in (0, 1]")
	}
	if c.Classify.Classes < 1 || c.Classify.Classes > 20 {
		problems = append(problems, "classify.classes must be between 1 and 20")
	}
	if len(c.Classify.Palette) == 0 {
		problems = append(problems, "classify.palette must not be empty")
	}
	if _, err := heat.ParseStrategy(c.Heat.Strategy); err != nil {
		problems = append(problems, "heat.strategy must be percentile or max")
	}
	if c.Heat.LowerPercentile < 0 || c.Heat.UpperPercentile > 1 || c.Heat.LowerPercentile >= c.Heat.UpperPercentile {
		problems = append(problems, "heat percentiles must satisfy 0 <= lower < upper <= 1")
	}
	if c.Heat.Floor < 0 || c.Heat.Floor >= 1 {
		problems = append(problems, "heat.floor must be in [0, 1)")
	}
	if _, err := report.ParseFormat(c.Report.Format); err != nil {
		problems = append(problems, "report.format must be table, csv, json, yaml or xlsx")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// Resolver builds the attribute resolver described by the fields section.
func (c *Config) Resolver() attrs.Resolver {
	r := attrs.NewResolver()
	if len(c.Fields.Population) > 0 {
		r.PopulationKeys = c.Fields.Population
	}
	if len(c.Fields.Name) > 0 {
		r.NameKeys = c.Fields.Name
	}
	r.ScanSubstrings = c.Fields.ScanSubstrings
	r.ScanFallback = c.Fields.ScanFallback
	if c.Fields.DefaultName != "" {
		r.DefaultName = c.Fields.DefaultName
	}
	return r
}

// Enricher builds the density enricher from the fields and area sections.
func (c *Config) Enricher() *density.Enricher {
	return &density.Enricher{
		Resolver: c.Resolver(),
		Area: area.Options{
			ProjectedThreshold: c.Area.ProjectedThreshold,
			SampleSize:         c.Area.SampleSize,
		},
	}
}

// SchemeOptions builds the class scheme options.
func (c *Config) SchemeOptions() density.SchemeOptions {
	return density.SchemeOptions{
		Classes:  c.Classify.Classes,
		Palette:  c.Classify.Palette,
		Fallback: c.Classify.FallbackColor,
	}
}

// HeatOptions builds heat normalization options. An unknown strategy falls
// back to percentile; Validate reports it.
func (c *Config) HeatOptions() heat.Options {
	strategy, err := heat.ParseStrategy(c.Heat.Strategy)
	if err != nil {
		strategy = heat.StrategyPercentile
	}
	return heat.Options{
		Strategy: strategy,
		Lower:    c.Heat.LowerPercentile,
		Upper:    c.Heat.UpperPercentile,
		Floor:    c.Heat.Floor,
	}
}

// LoaderOptions builds source loading options.
func (c *Config) LoaderOptions() loader.Options {
	return loader.Options{
		Kota:      c.Sources.Kota,
		Kabupaten: c.Sources.Kabupaten,
		TempDir:   c.Sources.TempDir,
		Timeout:   time.Duration(c.Sources.TimeoutSecs) * time.Second,
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
