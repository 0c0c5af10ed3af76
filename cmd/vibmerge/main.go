// Command vibmerge reconciles a quantum-chemistry program's IR intensity
// table with a normal-mode decomposition and exports the merged summary.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vibmerge/internal/cli"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(cli.ExitCodeFor(err))
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "vibmerge",
		Short:         "Merge IR intensities into normal-mode decompositions",
		Long:          "vibmerge aligns a quantum-chemistry IR spectrum with a normal-mode\ndecomposition by frequency, substitutes the directly computed intensities,\nand exports a filterable per-mode summary table.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "human-readable debug logging")

	root.AddCommand(newAnalyzeCommand(&verbose))
	root.AddCommand(newDecomposeCommand(&verbose))
	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func newAnalyzeCommand(verbose *bool) *cobra.Command {
	var (
		configPath string
		tolerance  float64
		topN       int
		policy     string
		format     string
		freqRange  string
		freqList   string
		atoms      string
	)
	inv := cli.DefaultInvocation()

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full merge/rank/filter/export pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if configPath != "" {
				opts, err := cli.LoadOptionsFile(configPath)
				if err != nil {
					return err
				}
				if err := opts.Apply(&inv); err != nil {
					return err
				}
			}

			// Explicit flags win over the options file.
			if cmd.Flags().Changed("tolerance") {
				inv.ToleranceCm1 = tolerance
			}
			if cmd.Flags().Changed("top-n") {
				inv.TopN = topN
			}
			if cmd.Flags().Changed("unmatched") {
				p, err := parsePolicyFlag(policy)
				if err != nil {
					return err
				}
				inv.UnmatchedPolicy = p
			}
			if cmd.Flags().Changed("format") {
				f, err := parseFormatFlag(format)
				if err != nil {
					return err
				}
				inv.Format = f
			}
			if freqRange != "" {
				fr, err := cli.ParseFrequencyRange(freqRange)
				if err != nil {
					return err
				}
				inv.FreqRange = fr
			}
			if freqList != "" {
				fs, err := cli.ParseFrequencyList(freqList)
				if err != nil {
					return err
				}
				inv.FrequenciesCm1 = fs
			}
			if atoms != "" {
				groups, err := cli.ParseAtomGroups(atoms)
				if err != nil {
					return err
				}
				inv.AtomGroups = groups
			}

			p := cli.Pipeline{Logger: logger, Stdout: cmd.OutOrStdout()}
			_, err = p.Run(cmd.Context(), inv)
			return err
		},
	}

	cmd.Flags().StringVar(&inv.IntensityPath, "orca", "", "quantum-chemistry output file carrying the IR spectrum (required)")
	cmd.Flags().StringVar(&inv.DecompositionPath, "nma", "", "decomposition tool output file")
	cmd.Flags().StringVar(&inv.HessianPath, "hessian", "", "hessian file; runs the decomposition tool first")
	cmd.Flags().StringVar(&inv.ToolCommand, "tool-command", "", "decomposition tool interpreter or binary")
	cmd.Flags().StringVar(&inv.ToolScript, "tool-script", "", "decomposition tool script path")
	cmd.Flags().StringVarP(&inv.OutputPath, "out", "o", "", "output file; empty prints text to stdout")
	cmd.Flags().StringVar(&format, "format", string(inv.Format), "export format: text|spreadsheet|custom_markup")
	cmd.Flags().Float64Var(&tolerance, "tolerance", inv.ToleranceCm1, "absolute frequency match tolerance in cm-1 (inclusive)")
	cmd.Flags().IntVar(&topN, "top-n", inv.TopN, "number of top contributions to keep per mode")
	cmd.Flags().StringVar(&policy, "unmatched", string(inv.UnmatchedPolicy), "unmatched-mode policy: drop|include_flagged")
	cmd.Flags().BoolVar(&inv.RewriteDecomposition, "rewrite-nma", false, "rewrite the decomposition file in place with authoritative intensities (keeps a .orig backup)")
	cmd.Flags().StringVar(&freqRange, "freq-range", "", "keep modes with LOW-HIGH cm-1 (inclusive)")
	cmd.Flags().StringVar(&freqList, "freqs", "", "keep modes at these comma-separated frequencies")
	cmd.Flags().StringVar(&atoms, "atoms", "", "keep modes whose contributions include these atom groups, e.g. \"C1 H2, N3 C4\"")
	cmd.Flags().BoolVar(&inv.AtomsAnyRank, "atoms-any-rank", false, "search all contributions for atom groups, not only the top-N")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML options file")

	return cmd
}

func newDecomposeCommand(verbose *bool) *cobra.Command {
	var (
		hessian string
		command string
		script  string
	)
	cmd := &cobra.Command{
		Use:   "decompose",
		Short: "Run only the external decomposition tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if hessian == "" || command == "" {
				return &cli.InvocationError{ExitCode: cli.ExitInvalidInvocation, Message: "--hessian and --tool-command are required"}
			}
			tool := newDecompTool(command, script)
			nmaPath, err := tool.Run(cmd.Context(), hessian)
			if err != nil {
				return err
			}
			logger.Info("decomposition tool finished", zap.String("output", nmaPath))
			fmt.Fprintln(cmd.OutOrStdout(), nmaPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&hessian, "hessian", "", "hessian file (required)")
	cmd.Flags().StringVar(&command, "tool-command", "", "decomposition tool interpreter or binary (required)")
	cmd.Flags().StringVar(&script, "tool-script", "", "decomposition tool script path")
	return cmd
}
