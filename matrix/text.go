package matrix

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// WriteTo writes the bordered table form of m: a line of underscores, one
// "| ... |" line per row with entries right-justified to their column width
// and printed with two decimals, then a line of hyphens.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	cells := make([]string, len(m.data))
	widths := make([]int, m.cols)
	for r := range m.rows {
		for c := range m.cols {
			s := strconv.FormatFloat(m.at(r, c), 'f', 2, 64)
			cells[r*m.cols+c] = s
			widths[c] = max(widths[c], len(s))
		}
	}

	lineWidth := 3
	for _, wd := range widths {
		lineWidth += wd + 1
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat("_", lineWidth))
	sb.WriteByte('\n')
	for r := range m.rows {
		sb.WriteByte('|')
		for c := range m.cols {
			sb.WriteByte(' ')
			sb.WriteString(fmt.Sprintf("%*s", widths[c], cells[r*m.cols+c]))
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteByte('\n')

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (m *Matrix) String() string {
	var sb strings.Builder
	_, _ = m.WriteTo(&sb)
	return sb.String()
}

// WriteBasic writes the entries of m row-major, space separated, in the
// shortest representation that round-trips.
func WriteBasic(w io.Writer, m *Matrix) error {
	parts := make([]string, len(m.data))
	for i, v := range m.data {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	_, err := io.WriteString(w, strings.Join(parts, " "))
	return err
}

// Reader reads whitespace separated numeric tokens. A single Reader should
// be used for consecutive reads from one stream, since it buffers input.
type Reader struct {
	sc *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Reader{sc: sc}
}

// Float consumes the next token as a finite float64.
func (r *Reader) Float() (float64, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return 0, fmt.Errorf("%w: unexpected end of input", ErrParse)
	}
	v, err := strconv.ParseFloat(r.sc.Text(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: invalid entry %q", ErrParse, r.sc.Text())
	}
	return v, nil
}

// Int consumes the next token as an int.
func (r *Reader) Int() (int, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return 0, fmt.Errorf("%w: unexpected end of input", ErrParse)
	}
	v, err := strconv.Atoi(r.sc.Text())
	if err != nil {
		return 0, fmt.Errorf("%w: invalid size %q", ErrParse, r.sc.Text())
	}
	return v, nil
}

// Matrix consumes rows*cols entries in row-major order.
func (r *Reader) Matrix(rows, cols int) (*Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.data {
		v, err := r.Float()
		if err != nil {
			return nil, fmt.Errorf("entry (%d,%d): %w", i/max(cols, 1), i%max(cols, 1), err)
		}
		m.data[i] = v
	}
	return m, nil
}

// SizedMatrix reads the row and column counts and then the entries.
func (r *Reader) SizedMatrix() (*Matrix, error) {
	rows, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	cols, err := r.Int()
	if err != nil {
		return nil, fmt.Errorf("cols: %w", err)
	}
	return r.Matrix(rows, cols)
}

// Read consumes a rows×cols matrix from src.
func Read(src io.Reader, rows, cols int) (*Matrix, error) {
	return NewReader(src).Matrix(rows, cols)
}

// ReadSized consumes "rows cols" followed by the entries from src.
func ReadSized(src io.Reader) (*Matrix, error) {
	return NewReader(src).SizedMatrix()
}
