package tx

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrNoInputs       = errors.New("transaction has no inputs")
	ErrNoOutputs      = errors.New("transaction has no outputs")
	ErrDuplicateInput = errors.New("duplicate input")
)

// Validate performs structural checks on a finalized transaction. Candidate
// transactions built for fee probing are allowed to skip this (they may have
// zero inputs).
func (t *Transaction) Validate() error {
	if len(t.Inputs) == 0 {
		return ErrNoInputs
	}
	if len(t.Outputs) == 0 {
		return ErrNoOutputs
	}

	seen := make(map[string]struct{}, len(t.Inputs))
	for i, in := range t.Inputs {
		key := in.PrevOut.String()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: input %d spends %s twice", ErrDuplicateInput, i, key)
		}
		seen[key] = struct{}{}
	}

	if len(t.Witnesses) > 0 && len(t.Witnesses) != len(t.Inputs) {
		return fmt.Errorf("witness count %d does not match input count %d",
			len(t.Witnesses), len(t.Inputs))
	}

	if _, err := t.TotalOutputValue(); err != nil {
		return err
	}
	return nil
}
