package simplex

// Status names the outcome of a solve.
type Status int

const (
	StatusOptimal Status = iota
	StatusUnbounded
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusUnbounded:
		return "unbounded"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Result is one of *Optimal, *Unbounded or *Infeasible.
type Result interface {
	Status() Status
	result()
}

// Optimal holds an optimal vertex and the dual y with c - yᵗA <= 0.
type Optimal struct {
	Solution    []float64
	Certificate []float64
	Value       float64
}

// Unbounded holds a feasible point x and a ray d with A·d = 0, d >= 0 and
// c·d > 0, so x + t·d stays feasible for every t >= 0.
type Unbounded struct {
	Solution []float64
	Ray      []float64
}

// Infeasible holds y with yᵗA >= 0 and yᵗb < 0.
type Infeasible struct {
	Certificate []float64
}

func (*Optimal) Status() Status    { return StatusOptimal }
func (*Unbounded) Status() Status  { return StatusUnbounded }
func (*Infeasible) Status() Status { return StatusInfeasible }

func (*Optimal) result()    {}
func (*Unbounded) result()  {}
func (*Infeasible) result() {}
