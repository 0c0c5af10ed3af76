package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"vibmerge/internal/decomp"
	"vibmerge/internal/export"
	"vibmerge/internal/extract"
	"vibmerge/internal/match"
	"vibmerge/internal/mode"
	"vibmerge/internal/summary"
)

// Result is what a completed run yields: the (possibly filtered) table plus
// the alignment report a scientist needs to sanity-check before trusting it.
type Result struct {
	Table  mode.SummaryTable
	Report match.Report
}

// Pipeline wires the stages together.
type Pipeline struct {
	Logger *zap.Logger
	// Stdout receives the text rendering when no output path is set.
	Stdout io.Writer
	// Decomposer overrides the external tool; nil builds one from the
	// invocation's tool fields when a hessian is given.
	Decomposer decomp.Runner
}

// Run executes one analysis. The context only scopes the external
// decomposition subprocess; the core stages run to completion synchronously.
func (p Pipeline) Run(ctx context.Context, inv Invocation) (Result, error) {
	var res Result
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := inv.Validate(); err != nil {
		return res, err
	}

	intensities, err := extract.ReadIntensityFile(inv.IntensityPath)
	if err != nil {
		return res, err
	}
	logger.Info("intensity source extracted",
		zap.String("path", inv.IntensityPath),
		zap.Int("modes", len(intensities)))

	nmaPath := inv.DecompositionPath
	if nmaPath == "" {
		runner := p.Decomposer
		if runner == nil {
			runner = decomp.Tool{Command: inv.ToolCommand, Script: inv.ToolScript}
		}
		nmaPath, err = runner.Run(ctx, inv.HessianPath)
		if err != nil {
			return res, err
		}
		logger.Info("decomposition tool finished", zap.String("output", nmaPath))
	}

	if inv.RewriteDecomposition {
		rw, err := extract.RewriteIntensities(nmaPath, intensities, inv.ToleranceCm1, true)
		if err != nil {
			return res, err
		}
		logger.Info("decomposition file rewritten with authoritative intensities",
			zap.String("path", nmaPath),
			zap.Int("replaced", rw.Replaced),
			zap.Ints("leftover_intensity_modes", rw.LeftoverModeIndexes))
	}

	decomps, err := extract.ReadDecompositionFile(nmaPath)
	if err != nil {
		return res, err
	}
	logger.Info("decomposition source extracted",
		zap.String("path", nmaPath),
		zap.Int("modes", len(decomps)))

	pairs, report, err := match.Match(intensities, decomps, match.Options{ToleranceCm1: inv.ToleranceCm1})
	if err != nil {
		return res, err
	}
	res.Report = report
	logReport(logger, report)

	table, err := summary.Build(pairs, summary.Options{TopN: inv.TopN, UnmatchedPolicy: inv.UnmatchedPolicy})
	if err != nil {
		return res, err
	}

	if preds := inv.predicates(); len(preds) > 0 {
		filtered := summary.Filter(table, preds...)
		logger.Info("filters applied",
			zap.Int("rows_before", table.Len()),
			zap.Int("rows_after", filtered.Len()))
		table = filtered
	}
	res.Table = table

	if inv.OutputPath != "" {
		if err := export.Export(table, inv.Format, inv.OutputPath); err != nil {
			return res, err
		}
		logger.Info("table exported",
			zap.String("path", inv.OutputPath),
			zap.String("format", string(inv.Format)),
			zap.Int("rows", table.Len()))
		return res, nil
	}

	if p.Stdout != nil {
		data, err := export.Render(table, export.FormatText)
		if err != nil {
			return res, err
		}
		if _, err := p.Stdout.Write(data); err != nil {
			return res, fmt.Errorf("write table: %w", err)
		}
	}
	return res, nil
}

// logReport surfaces the alignment outcome: every run reports matched vs
// unmatched counts, and every ambiguity names the choice that was made.
func logReport(logger *zap.Logger, report match.Report) {
	logger.Info("mode alignment complete",
		zap.Int("matched", report.Matched),
		zap.Int("unmatched", report.Unmatched))
	for _, d := range report.Diagnostics {
		switch d.Kind {
		case match.DiagnosticAmbiguousMatch:
			logger.Warn("ambiguous frequency match resolved to lowest mode index",
				zap.Int("decomposition_mode", d.ModeIndex),
				zap.Float64("frequency_cm1", d.FrequencyCm1),
				zap.Int("chosen_intensity_mode", d.ChosenModeIndex),
				zap.Ints("rejected_intensity_modes", d.RejectedModeIndexes),
				zap.Float64("distance_cm1", d.NearestDistanceCm1))
		case match.DiagnosticUnmatchedMode:
			logger.Warn("mode exceeded frequency tolerance against all candidates",
				zap.Int("decomposition_mode", d.ModeIndex),
				zap.Float64("frequency_cm1", d.FrequencyCm1),
				zap.Float64("nearest_distance_cm1", d.NearestDistanceCm1))
		}
	}
}
