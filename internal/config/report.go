package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	apperrors "github.com/gatei-njuri/cocoa-analysis/internal/errors"
)

// Report is the declarative description of one report run: which entities
// to extract from the source table, how to name and color their outputs, and
// how strict the reshape step is.
type Report struct {
	Entities   []Entity      `yaml:"entities" validate:"required,min=1,dive"`
	Combined   CombinedChart `yaml:"combined"`
	Strictness Strictness    `yaml:"strictness"`
}

// Entity maps a source Area name to its display label, output files and colors.
type Entity struct {
	Name  string `yaml:"name" validate:"required"`
	Label string `yaml:"label" validate:"required"`

	TableFile   string `yaml:"table_file" validate:"required,filename"`
	ScatterFile string `yaml:"scatter_file" validate:"required,filename"`
	BarFile     string `yaml:"bar_file" validate:"required,filename"`

	ScatterColor      string  `yaml:"scatter_color" validate:"required,hexcolor"`
	BarColor          string  `yaml:"bar_color" validate:"required,hexcolor"`
	PanelScatterColor string  `yaml:"panel_scatter_color" validate:"required,hexcolor"`
	PanelBarColor     string  `yaml:"panel_bar_color" validate:"required,hexcolor"`
	MarkerSize        float64 `yaml:"marker_size" validate:"gt=0"`
}

// CombinedChart configures the multi-panel chart built from every entity.
type CombinedChart struct {
	File          string  `yaml:"file" validate:"required,filename"`
	Title         string  `yaml:"title"`
	MarkerSize    float64 `yaml:"marker_size" validate:"gt=0"`
	MissingPanels string  `yaml:"missing_panels" validate:"oneof=empty annotate"`
}

// Strictness selects what the reshape step does on duplicate (Year, Element)
// rows and on entity names that match nothing.
type Strictness struct {
	Collisions    string `yaml:"collisions" validate:"oneof=silent warn fail"`
	UnknownEntity string `yaml:"unknown_entity" validate:"oneof=silent warn fail"`
}

// DefaultReport returns the built-in two-country cocoa report.
func DefaultReport() *Report {
	return &Report{
		Entities: []Entity{
			{
				Name:              "Ghana",
				Label:             "Ghana",
				TableFile:         "ghana_table.csv",
				ScatterFile:       "ghana_yield_scatter.png",
				BarFile:           "ghana_area_bar.png",
				ScatterColor:      defaultPalette[0][0],
				BarColor:          defaultPalette[0][1],
				PanelScatterColor: defaultPalette[0][2],
				PanelBarColor:     defaultPalette[0][3],
				MarkerSize:        DefaultScatterMarkerSize,
			},
			{
				Name:              "Côte d'Ivoire",
				Label:             "Côte d'Ivoire",
				TableFile:         "coast_table.csv",
				ScatterFile:       "coast_yield_scatter.png",
				BarFile:           "coast_area_bar.png",
				ScatterColor:      defaultPalette[1][0],
				BarColor:          defaultPalette[1][1],
				PanelScatterColor: defaultPalette[1][2],
				PanelBarColor:     defaultPalette[1][3],
				MarkerSize:        DefaultScatterMarkerSize,
			},
		},
		Combined: CombinedChart{
			File:          DefaultCombinedFile,
			Title:         DefaultCombinedTitle,
			MarkerSize:    DefaultPanelMarkerSize,
			MissingPanels: MissingPanelsEmpty,
		},
		Strictness: Strictness{
			Collisions:    PolicySilent,
			UnknownEntity: PolicySilent,
		},
	}
}

// LoadReport returns the default report, overlaid with the YAML file at path
// when path is not empty, and validated.
func LoadReport(path string) (*Report, error) {
	report := DefaultReport()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewDataAccessError("read report file", err).WithContext("path", path)
		}
		if err := yaml.Unmarshal(data, report); err != nil {
			return nil, apperrors.NewConfigError("parse report file", err).WithContext("path", path)
		}
	}

	report.applyDefaults()

	if err := report.Validate(); err != nil {
		return nil, err
	}
	return report, nil
}

// applyDefaults fills the fields an entity listed in a report file may omit.
func (r *Report) applyDefaults() {
	for i := range r.Entities {
		e := &r.Entities[i]
		if e.Label == "" {
			e.Label = e.Name
		}
		slug := Slug(e.Name)
		if e.TableFile == "" {
			e.TableFile = slug + "_table.csv"
		}
		if e.ScatterFile == "" {
			e.ScatterFile = slug + "_yield_scatter.png"
		}
		if e.BarFile == "" {
			e.BarFile = slug + "_area_bar.png"
		}

		colors := defaultPalette[i%len(defaultPalette)]
		if e.ScatterColor == "" {
			e.ScatterColor = colors[0]
		}
		if e.BarColor == "" {
			e.BarColor = colors[1]
		}
		if e.PanelScatterColor == "" {
			e.PanelScatterColor = colors[2]
		}
		if e.PanelBarColor == "" {
			e.PanelBarColor = colors[3]
		}
		if e.MarkerSize == 0 {
			e.MarkerSize = DefaultScatterMarkerSize
		}
	}

	if r.Combined.File == "" {
		r.Combined.File = DefaultCombinedFile
	}
	if r.Combined.MarkerSize == 0 {
		r.Combined.MarkerSize = DefaultPanelMarkerSize
	}
	if r.Combined.MissingPanels == "" {
		r.Combined.MissingPanels = MissingPanelsEmpty
	}
	if r.Strictness.Collisions == "" {
		r.Strictness.Collisions = PolicySilent
	}
	if r.Strictness.UnknownEntity == "" {
		r.Strictness.UnknownEntity = PolicySilent
	}
}

// Validate checks the report against its struct tags.
func (r *Report) Validate() error {
	err := newValidator().Struct(r)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewConfigError("validate report", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatValidationError(fe))
	}
	return apperrors.NewConfigError("invalid report", fmt.Errorf("%s", strings.Join(msgs, "; ")))
}

// Slug turns an entity name into a lowercase file name prefix.
func Slug(name string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("filename", isValidFilename)

	// Use YAML tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func isValidFilename(fl validator.FieldLevel) bool {
	filename := fl.Field().String()
	if filename == "" {
		return false
	}
	// Outputs always land directly in the output directory
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return false
	}
	return len(filename) <= 255
}

func formatValidationError(err validator.FieldError) string {
	field := err.Namespace()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color such as #1f77b4", field)
	case "filename":
		return fmt.Sprintf("%s must be a plain file name", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
