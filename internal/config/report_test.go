package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gatei-njuri/cocoa-analysis/internal/errors"
)

func writeReportFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultReport(t *testing.T) {
	report := DefaultReport()
	require.NoError(t, report.Validate())

	require.Len(t, report.Entities, 2)
	assert.Equal(t, "Ghana", report.Entities[0].Name)
	assert.Equal(t, "Côte d'Ivoire", report.Entities[1].Name)

	files := []string{report.Combined.File}
	for _, e := range report.Entities {
		files = append(files, e.TableFile, e.ScatterFile, e.BarFile)
	}
	assert.ElementsMatch(t, []string{
		"ghana_table.csv", "ghana_yield_scatter.png", "ghana_area_bar.png",
		"coast_table.csv", "coast_yield_scatter.png", "coast_area_bar.png",
		"combined_plots.pdf",
	}, files)

	assert.Equal(t, PolicySilent, report.Strictness.Collisions)
	assert.Equal(t, PolicySilent, report.Strictness.UnknownEntity)
	assert.Equal(t, MissingPanelsEmpty, report.Combined.MissingPanels)
}

func TestLoadReport(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  apperrors.ErrorType
		validate func(*testing.T, *Report)
	}{
		{
			name: "empty path returns defaults",
			validate: func(t *testing.T, r *Report) {
				assert.Equal(t, DefaultReport(), r)
			},
		},
		{
			name: "overlay strictness keeps default entities",
			body: "strictness:\n  collisions: warn\n  unknown_entity: fail\n",
			validate: func(t *testing.T, r *Report) {
				assert.Len(t, r.Entities, 2)
				assert.Equal(t, PolicyWarn, r.Strictness.Collisions)
				assert.Equal(t, PolicyFail, r.Strictness.UnknownEntity)
			},
		},
		{
			name: "entity list gets derived defaults",
			body: "entities:\n  - name: Ghana\n  - name: Togo\n    scatter_color: \"#123456\"\n  - name: Côte d'Ivoire\n",
			validate: func(t *testing.T, r *Report) {
				require.Len(t, r.Entities, 3)
				togo := r.Entities[1]
				assert.Equal(t, "Togo", togo.Label)
				assert.Equal(t, "togo_table.csv", togo.TableFile)
				assert.Equal(t, "togo_yield_scatter.png", togo.ScatterFile)
				assert.Equal(t, "togo_area_bar.png", togo.BarFile)
				assert.Equal(t, "#123456", togo.ScatterColor)
				assert.Equal(t, defaultPalette[1][1], togo.BarColor)
				assert.Equal(t, DefaultScatterMarkerSize, togo.MarkerSize)
				assert.Equal(t, "côte_d_ivoire_table.csv", r.Entities[2].TableFile)
			},
		},
		{
			name:    "invalid color",
			body:    "entities:\n  - name: Ghana\n    bar_color: blue\n",
			wantErr: apperrors.ErrTypeConfig,
		},
		{
			name:    "file name with directory",
			body:    "combined:\n  file: ../plots.pdf\n",
			wantErr: apperrors.ErrTypeConfig,
		},
		{
			name:    "unknown policy",
			body:    "strictness:\n  collisions: shout\n",
			wantErr: apperrors.ErrTypeConfig,
		},
		{
			name:    "malformed yaml",
			body:    "entities: [\n",
			wantErr: apperrors.ErrTypeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.body != "" {
				path = writeReportFile(t, tt.body)
			}

			report, err := LoadReport(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, report)
		})
	}
}

func TestLoadReport_MissingFile(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsDataAccess(err))
}

func TestReport_ValidateMessages(t *testing.T) {
	report := DefaultReport()
	report.Entities[0].ScatterColor = "green"
	report.Combined.MissingPanels = "hide"

	err := report.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scatter_color must be a hex color")
	assert.Contains(t, err.Error(), "missing_panels must be one of: empty, annotate")
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Ghana":             "ghana",
		"Côte d'Ivoire":     "côte_d_ivoire",
		"  Sierra  Leone  ": "sierra_leone",
		"Area-51":           "area_51",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}
