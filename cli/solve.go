package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"q.log/twophase/instance"
	"q.log/twophase/simplex"
)

// verifyTolerance bounds the residuals accepted by --verify.
const verifyTolerance = 1e-6

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	Input  string
	Verify bool
	Phase2 bool
	Trace  bool
}

// SolveOutput is the solve payload: the report plus the verification
// outcome when --verify was given.
type SolveOutput struct {
	simplex.Report
	Verified bool `json:"verified,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{}

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a linear program",
		Long: `Solve a linear program with the two-phase simplex method.

The problem is read from file, or from standard input in the stream layout
when no file is given. The input format follows the file extension unless
--input names one. With --phase2 only Phase II runs, starting from the
basis given in a YAML problem.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("verify") && rootOpts.config.Verify {
				opts.Verify = true
			}
			return runSolve(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", string(instance.FormatAuto), "input format (auto|stream|yaml|mps|lp)")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "check the certificate of the result")
	cmd.Flags().BoolVar(&opts.Phase2, "phase2", false, "run Phase II from the problem's basis")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print every basis visited by Phase II")

	return cmd
}

func runSolve(rootOpts *RootOptions, opts *SolveOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	logger := rootOpts.Logger()

	problem, err := loadProblem(opts.Input, args, cmd.InOrStdin())
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInput, "failed to read problem", err)
	}
	logger.Debug("loaded problem", "rows", problem.Model.NumRows(), "cols", problem.Model.NumCols())

	solveOpts := []simplex.Option{simplex.WithLogger(logger)}
	if opts.Trace && formatter.Format == "text" {
		solveOpts = append(solveOpts, simplex.WithTrace(func(s simplex.Step) {
			fmt.Fprintf(formatter.Writer, "iteration %d: basis %s objective %s\n",
				s.Iteration, formatInts(s.Basis), formatNumber(s.Objective))
		}))
	}

	var res simplex.Result
	if opts.Phase2 {
		if len(problem.Basis) == 0 {
			return formatter.fail(ExitCommandError, ErrCodeInput, "phase2 needs a starting basis", errors.New("problem has no basis"))
		}
		basis, err := simplex.NewBasis(problem.Basis...)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeInput, "invalid basis", err)
		}
		res, err = simplex.Simplex(problem.Model, basis, solveOpts...)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeSolve, "solve failed", err)
		}
	} else {
		res, err = simplex.TwoPhase(problem.Model, solveOpts...)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeSolve, "solve failed", err)
		}
	}

	out := SolveOutput{Report: simplex.NewReport(res)}
	if opts.Verify {
		if err := simplex.Verify(problem.Model, res, verifyTolerance); err != nil {
			return formatter.fail(ExitFailure, ErrCodeVerify, "certificate check failed", err)
		}
		out.Verified = true
	}
	if problem.Recovery != nil {
		out.Report, err = out.Report.Recovered(problem.Recovery)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeSolve, "failed to recover solution", err)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	writeReport(formatter.Writer, out)
	return nil
}

// loadProblem reads the problem named by args, or standard input when args
// is empty.
func loadProblem(input string, args []string, stdin io.Reader) (*instance.Problem, error) {
	format, err := instance.ParseFormat(input)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return instance.Decode(stdin, format)
	}
	return instance.Load(args[0], format)
}

func writeReport(w io.Writer, out SolveOutput) {
	fmt.Fprintf(w, "result: %s\n", out.ResultType)
	if len(out.Variables) > 0 {
		fmt.Fprintf(w, "variables: %s\n", strings.Join(out.Variables, " "))
	}
	if out.Value != nil {
		fmt.Fprintf(w, "value: %s\n", formatNumber(*out.Value))
	}
	if len(out.Solution) > 0 {
		fmt.Fprintf(w, "solution: %s\n", formatVector(out.Solution))
	}
	fmt.Fprintf(w, "certificate: %s\n", formatVector(out.Certificate))
	if out.Verified {
		fmt.Fprintln(w, "verified: ok")
	}
}

// Phase1Output is the phase1 payload.
type Phase1Output struct {
	Feasible    bool      `json:"feasible"`
	Basis       []int     `json:"basis,omitempty"`
	Redundant   []int     `json:"redundant,omitempty"`
	Certificate []float64 `json:"certificate,omitempty"`
}

// NewPhase1Command creates the phase1 command.
func NewPhase1Command(rootOpts *RootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "phase1 [file]",
		Short: "Decide feasibility of a problem's constraints",
		Long: `Run Phase I on the constraints Ax = b, x >= 0 of a problem.

Prints a feasible basis and any redundant rows, or a certificate y with
yᵗA >= 0 and yᵗb < 0 when the constraints have no solution.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhase1(rootOpts, input, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", string(instance.FormatAuto), "input format (auto|stream|yaml|mps|lp)")

	return cmd
}

func runPhase1(rootOpts *RootOptions, input string, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	problem, err := loadProblem(input, args, cmd.InOrStdin())
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInput, "failed to read problem", err)
	}

	p1, err := simplex.PhaseI(problem.Model.A, problem.Model.B, simplex.WithLogger(rootOpts.Logger()))
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeSolve, "phase I failed", err)
	}

	out := Phase1Output{Feasible: p1.Feasible, Redundant: p1.Redundant, Certificate: p1.Certificate}
	if p1.Basis != nil {
		out.Basis = p1.Basis.Indices()
	}

	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	w := formatter.Writer
	fmt.Fprintf(w, "feasible: %t\n", out.Feasible)
	if out.Feasible {
		fmt.Fprintf(w, "basis: %s\n", formatInts(out.Basis))
		if len(out.Redundant) > 0 {
			fmt.Fprintf(w, "redundant: %s\n", formatInts(out.Redundant))
		}
		return nil
	}
	fmt.Fprintf(w, "certificate: %s\n", formatVector(out.Certificate))
	return nil
}
