package workflow

// Normalize flattens the steps of every job into a single sequence, in job
// declaration order and then step order. Job names and dependencies do not
// survive.
func Normalize(doc *Document) ([]Step, error) {
	var steps []Step
	if doc != nil {
		for _, job := range doc.Jobs {
			steps = append(steps, job.Steps...)
		}
	}

	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	return steps, nil
}
