// Package operations runs a report as an ordered list of steps.
//
// A run loads the source table once, then processes each entity of the
// report in order:
//
//	reshape → clean → write table → scatter plot → bar chart
//
// and finally renders the combined figure from every cleaned series. Steps
// run sequentially; the first error aborts the run with the remaining steps
// never started. Charts skipped for missing data are recorded as skipped
// steps, not failures.
//
// Every step is recorded in the RunSummary and, when tracing is enabled,
// emitted as a span under the run's span.
//
// Example usage:
//
//	pipeline, err := operations.NewPipeline(config.DefaultReport(), operations.Options{
//		Logger: logger,
//		Tracer: tracing.Tracer,
//	})
//	if err != nil {
//		return err
//	}
//	summary, err := pipeline.Run(ctx, "cocoa.csv", "output")
package operations
