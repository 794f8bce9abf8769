package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"q.log/twophase/instance"
	"q.log/twophase/matrix"
	"q.log/twophase/simplex"
)

// CanonicalOutput is the canonical form of a problem for its basis.
type CanonicalOutput struct {
	Basis []int       `json:"basis"`
	Z     float64     `json:"z"`
	C     []float64   `json:"c"`
	A     [][]float64 `json:"a"`
	B     []float64   `json:"b"`
	Y     []float64   `json:"y"`
}

// NewCanonicalCommand creates the canonical command.
func NewCanonicalCommand(rootOpts *RootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "canonical <file>",
		Short: "Rewrite a problem in canonical form for its basis",
		Long: `Rewrite a problem in canonical form for the basis it carries.

The basis columns of A become the identity and their reduced costs become
zero. The dual vector y used for the rewrite is printed as well.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanonical(rootOpts, input, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", string(instance.FormatAuto), "input format (auto|stream|yaml|mps|lp)")

	return cmd
}

func runCanonical(rootOpts *RootOptions, input, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	problem, err := loadProblem(input, []string{path}, nil)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInput, "failed to read problem", err)
	}
	if len(problem.Basis) == 0 {
		return formatter.fail(ExitCommandError, ErrCodeInput, "canonical form needs a basis", errors.New("problem has no basis"))
	}
	basis, err := simplex.NewBasis(problem.Basis...)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInput, "invalid basis", err)
	}

	m := problem.Model.Clone()
	y, err := simplex.CanonicalForm(m, basis)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeSolve, "canonical form failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(CanonicalOutput{
			Basis: basis.Indices(),
			Z:     m.Z,
			C:     m.C.RawData(),
			A:     rows(m.A),
			B:     m.B.RawData(),
			Y:     y.RawData(),
		})
	}

	w := formatter.Writer
	fmt.Fprintf(w, "basis: %s\n", formatInts(basis.Indices()))
	fmt.Fprintf(w, "z: %s\n", formatNumber(m.Z))
	for _, part := range []struct {
		label string
		m     *matrix.Matrix
	}{{"c", m.C}, {"A", m.A}, {"b", m.B}, {"y", y}} {
		fmt.Fprintf(w, "%s:\n", part.label)
		if _, err := part.m.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

func rows(m *matrix.Matrix) [][]float64 {
	out := make([][]float64, m.Rows())
	for r := range out {
		out[r], _ = m.Row(r)
	}
	return out
}

// InverseOutput is the inverse command payload.
type InverseOutput struct {
	Inverse [][]float64 `json:"inverse"`
}

// NewInverseCommand creates the inverse command.
func NewInverseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inverse [file]",
		Short: "Invert a square matrix",
		Long: `Read a matrix given as "rows cols" followed by its entries in row-major
order and print its inverse. Standard input is read when no file is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInverse(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runInverse(rootOpts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	src := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeInput, "failed to open matrix file", err)
		}
		defer f.Close()
		src = f
	}

	m, err := matrix.ReadSized(src)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInput, "failed to read matrix", err)
	}
	inv, err := matrix.LeftInverse(m)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeSolve, "matrix has no inverse", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(InverseOutput{Inverse: rows(inv)})
	}
	_, err = inv.WriteTo(formatter.Writer)
	return err
}
