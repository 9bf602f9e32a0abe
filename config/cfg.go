package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// PageConfig describes physical print page and its 2-column card grid.
	PageConfig struct {
		Size         PageSize `yaml:"size" validate:"oneof=0 1"`
		CardsPerPage int      `yaml:"cards_per_page" validate:"min=1,max=8"`
		MarginPt     float64  `yaml:"margin_pt" validate:"gte=0"`
		HeaderPt     float64  `yaml:"header_pt" validate:"gte=0"`
		GapPt        float64  `yaml:"gap_pt" validate:"gte=0"`
	}

	// AssetsConfig points to locally stored card art and its correction table.
	AssetsConfig struct {
		Dir          string   `yaml:"dir" sanitize:"path_clean"`
		OverridePath string   `yaml:"override_path" sanitize:"assure_file_access"`
		Sources      []string `yaml:"sources" validate:"dive,required"`
	}

	// CatalogConfig points to EDOPro-style card database with card texts and stats.
	CatalogConfig struct {
		DatabasePath string `yaml:"database_path" sanitize:"assure_file_access"`
	}

	RasterConfig struct {
		DPI int `yaml:"dpi" validate:"min=72,max=600"`
	}

	DeckConfig struct {
		OutputNameTemplate    string        `yaml:"output_name_template"`
		FileNameTransliterate bool          `yaml:"file_name_transliterate"`
		Page                  PageConfig    `yaml:"page"`
		Assets                AssetsConfig  `yaml:"assets"`
		Catalog               CatalogConfig `yaml:"catalog"`
		Raster                RasterConfig  `yaml:"raster"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Deck      DeckConfig     `yaml:"deck"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
