package simplex

import "q.log/twophase/model"

// Report is the flat, serializable form of a Result.
type Report struct {
	ResultType  string    `json:"resultType" yaml:"resultType"`
	Variables   []string  `json:"variables,omitempty" yaml:"variables,omitempty"`
	Solution    []float64 `json:"solution" yaml:"solution"`
	Certificate []float64 `json:"certificate" yaml:"certificate"`
	Value       *float64  `json:"value,omitempty" yaml:"value,omitempty"`
}

// NewReport flattens r. The certificate of an unbounded result is its ray;
// an infeasible result has an empty solution.
func NewReport(r Result) Report {
	switch res := r.(type) {
	case *Optimal:
		v := res.Value
		return Report{ResultType: res.Status().String(), Solution: res.Solution, Certificate: res.Certificate, Value: &v}
	case *Unbounded:
		return Report{ResultType: res.Status().String(), Solution: res.Solution, Certificate: res.Ray}
	case *Infeasible:
		return Report{ResultType: res.Status().String(), Solution: []float64{}, Certificate: res.Certificate}
	default:
		return Report{ResultType: "unknown"}
	}
}

// Recovered returns a copy of r with the solution and value expressed over
// the source variables of rec. Certificates stay in model coordinates.
func (r Report) Recovered(rec *model.Recovery) (Report, error) {
	if len(r.Solution) > 0 {
		x, err := rec.Recover(r.Solution)
		if err != nil {
			return r, err
		}
		r.Solution = x
	}
	if r.Value != nil {
		v := rec.Value(*r.Value)
		r.Value = &v
	}
	r.Variables = rec.Names()
	return r, nil
}
