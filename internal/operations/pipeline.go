package operations

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/gatei-njuri/cocoa-analysis/internal/charts"
	"github.com/gatei-njuri/cocoa-analysis/internal/config"
	"github.com/gatei-njuri/cocoa-analysis/internal/dataprocessing"
	"github.com/gatei-njuri/cocoa-analysis/internal/exporter"
	"github.com/gatei-njuri/cocoa-analysis/internal/infrastructure"
)

// Step IDs; entity steps are prefixed with the entity slug
const (
	StepLoad     = "load"
	StepReshape  = "reshape"
	StepClean    = "clean"
	StepTable    = "table"
	StepScatter  = "scatter"
	StepBar      = "bar"
	StepCombined = "combined"
)

// Options configures a Pipeline. Zero values select stdout notices, the
// default logger and a no-op tracer.
type Options struct {
	Notices io.Writer
	Logger  *slog.Logger
	Tracer  trace.Tracer
}

// entityPlan is a report entity with its colors parsed
type entityPlan struct {
	config.Entity
	slug         string
	scatter      color.Color
	bar          color.Color
	panelScatter color.Color
	panelBar     color.Color
}

// Pipeline runs a report: load the source once, then for every entity
// reshape, clean, write the table and render its two charts, and finally
// render the combined figure. The first error aborts the run.
type Pipeline struct {
	report   *config.Report
	entities []entityPlan
	reshaper *dataprocessing.Reshaper
	renderer *charts.Renderer
	notices  io.Writer
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewPipeline prepares a pipeline for report
func NewPipeline(report *config.Report, opts Options) (*Pipeline, error) {
	if opts.Notices == nil {
		opts.Notices = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer(infrastructure.TracerName)
	}

	plans := make([]entityPlan, 0, len(report.Entities))
	for _, e := range report.Entities {
		plan := entityPlan{Entity: e, slug: config.Slug(e.Name)}
		for _, c := range []struct {
			hex string
			dst *color.Color
		}{
			{e.ScatterColor, &plan.scatter},
			{e.BarColor, &plan.bar},
			{e.PanelScatterColor, &plan.panelScatter},
			{e.PanelBarColor, &plan.panelBar},
		} {
			parsed, err := charts.ParseColor(c.hex)
			if err != nil {
				return nil, err
			}
			*c.dst = parsed
		}
		plans = append(plans, plan)
	}

	logger := infrastructure.WithComponent(opts.Logger, "pipeline")

	reshaper := dataprocessing.NewReshaper(logger)
	reshaper.Collisions = dataprocessing.Policy(report.Strictness.Collisions)
	reshaper.UnknownEntity = dataprocessing.Policy(report.Strictness.UnknownEntity)

	return &Pipeline{
		report:   report,
		entities: plans,
		reshaper: reshaper,
		renderer: charts.NewRenderer(opts.Notices, logger),
		notices:  opts.Notices,
		logger:   logger,
		tracer:   opts.Tracer,
	}, nil
}

// Run executes the report for the source file at input, writing every
// output into outputDir. The summary is returned even when a step fails.
func (p *Pipeline) Run(ctx context.Context, input, outputDir string) (*RunSummary, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	summary := &RunSummary{
		RunID:     infrastructure.GetRunID(ctx),
		Input:     input,
		OutputDir: outputDir,
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(
			attribute.String("run.id", summary.RunID),
			attribute.String("run.input", input),
			attribute.String("run.output_dir", outputDir),
			attribute.Int("run.entities", len(p.entities)),
		))
	defer span.End()

	p.logger.InfoContext(ctx, "Starting report run",
		slog.String("input", input),
		slog.String("output_dir", outputDir),
		slog.Int("entities", len(p.entities)))

	if err := p.execute(ctx, summary, input, outputDir); err != nil {
		infrastructure.RecordError(ctx, err)
		p.logger.ErrorContext(ctx, "Report run failed", slog.String("error", err.Error()))
		return summary, err
	}

	p.logger.InfoContext(ctx, "Report run completed",
		slog.Int("completed", summary.Count(StepStatusCompleted)),
		slog.Int("skipped", summary.Count(StepStatusSkipped)),
		slog.Any("outputs", summary.Outputs()))
	fmt.Fprintf(p.notices, "All outputs saved in: %s\n", outputDir)
	return summary, nil
}

func (p *Pipeline) execute(ctx context.Context, summary *RunSummary, input, outputDir string) error {
	var raw *dataprocessing.Table
	err := p.step(ctx, summary, StepLoad, "Load source", "", func(ctx context.Context, s *StepState) error {
		var err error
		raw, err = dataprocessing.Load(input)
		if err == nil {
			s.Message = fmt.Sprintf("%d rows", raw.Len())
		}
		return err
	})
	if err != nil {
		return err
	}

	writer := exporter.NewCSVWriter(outputDir, p.logger)
	entries := make([]charts.Entry, 0, len(p.entities))

	for _, e := range p.entities {
		series, err := p.runEntity(ctx, summary, raw, writer, e, outputDir)
		if err != nil {
			return err
		}
		entries = append(entries, charts.Entry{
			Label:        e.Label,
			Series:       series,
			ScatterColor: e.panelScatter,
			BarColor:     e.panelBar,
		})
	}

	return p.step(ctx, summary, StepCombined, "Render combined chart", "", func(ctx context.Context, s *StepState) error {
		combined := p.report.Combined
		layout := charts.EntityGrid(combined.Title, entries, combined.MarkerSize)
		layout.AnnotateEmpty = combined.MissingPanels == config.MissingPanelsAnnotate

		path, err := p.renderer.Combined(layout, outputDir, combined.File)
		if err == nil {
			s.Output = path
		}
		return err
	})
}

func (p *Pipeline) runEntity(ctx context.Context, summary *RunSummary, raw *dataprocessing.Table,
	writer *exporter.CSVWriter, e entityPlan, outputDir string) (*dataprocessing.TimeSeries, error) {
	var (
		wide   *dataprocessing.Table
		series *dataprocessing.TimeSeries
	)

	steps := []struct {
		id   string
		name string
		run  func(ctx context.Context, s *StepState) error
	}{
		{StepReshape, "Filter and reshape", func(ctx context.Context, s *StepState) error {
			var err error
			wide, err = p.reshaper.Reshape(ctx, raw, e.Name)
			if err == nil {
				s.Message = fmt.Sprintf("%d years", wide.Len())
			}
			return err
		}},
		{StepClean, "Clean", func(ctx context.Context, s *StepState) error {
			series = dataprocessing.Clean(wide)
			s.Message = fmt.Sprintf("%d rows", series.Len())
			return nil
		}},
		{StepTable, "Write table", func(ctx context.Context, s *StepState) error {
			path, err := writer.WriteTable(series, e.TableFile)
			s.Output = path
			return err
		}},
		{StepScatter, "Render scatter plot", func(ctx context.Context, s *StepState) error {
			opts := charts.Options{Color: e.scatter, MarkerSize: e.MarkerSize}
			written, err := p.renderer.Scatter(series, e.Label, outputDir, e.ScatterFile, opts)
			return chartOutcome(s, written, err, outputDir, e.ScatterFile)
		}},
		{StepBar, "Render bar chart", func(ctx context.Context, s *StepState) error {
			written, err := p.renderer.Bar(series, e.Label, outputDir, e.BarFile, charts.Options{Color: e.bar})
			return chartOutcome(s, written, err, outputDir, e.BarFile)
		}},
	}

	for _, st := range steps {
		if err := p.step(ctx, summary, e.slug+"."+st.id, st.name, e.Name, st.run); err != nil {
			return nil, err
		}
	}
	return series, nil
}

// chartOutcome records a chart result on its step; an unwritten chart
// skips the step
func chartOutcome(s *StepState, written bool, err error, dir, file string) error {
	if err != nil {
		return err
	}
	if !written {
		s.Status = StepStatusSkipped
		s.Message = "no data"
		return nil
	}
	s.Output = filepath.Join(dir, file)
	return nil
}

// step runs fn as one traced, recorded step of the run
func (p *Pipeline) step(ctx context.Context, summary *RunSummary, id, name, entity string,
	fn func(ctx context.Context, s *StepState) error) error {
	state := NewStepState(id, name, entity)
	summary.Steps = append(summary.Steps, state)

	ctx, span := p.tracer.Start(ctx, "pipeline.step."+id,
		trace.WithAttributes(
			attribute.String("step.id", id),
			attribute.String("step.entity", entity),
		))
	defer span.End()

	state.Start()
	if err := fn(ctx, state); err != nil {
		state.Fail(err)
		infrastructure.RecordError(ctx, err)
		p.logger.ErrorContext(ctx, "Step failed",
			slog.String("step", id),
			slog.String("entity", entity),
			slog.String("error", err.Error()))
		return err
	}

	if state.Status == StepStatusSkipped {
		state.Skip(state.Message)
	} else {
		state.Complete(state.Output)
	}
	infrastructure.SetSpanAttributes(ctx, map[string]string{
		"step.status": string(state.Status),
		"step.output": state.Output,
	})

	p.logger.DebugContext(ctx, "Step finished",
		slog.String("step", id),
		slog.String("entity", entity),
		slog.String("status", string(state.Status)),
		slog.String("message", state.Message),
		slog.Duration("duration", state.Duration()))
	return nil
}
