package problemgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// MaxAttempts is the retry budget for constraint sampling.
const MaxAttempts = 8

// ErrConstraintsExhausted is returned by Instantiate when no sample within
// the retry budget satisfied the template. The Generator recovers from it
// by switching to the topic's fallback template.
var ErrConstraintsExhausted = errors.New("template constraints exhausted")

// Instantiate samples t with rng until the constraints hold, retrying at
// most MaxAttempts times.
func Instantiate(t Template, rng *rand.Rand) (*Problem, error) {
	return instantiate(t, rng, MaxAttempts, nil)
}

// instantiate is Instantiate with a configurable budget and a validator
// chain. A validation failure consumes an attempt like a failed constraint.
func instantiate(t Template, rng *rand.Rand, attempts int, validators []Validator) (*Problem, error) {
	if attempts < 1 {
		attempts = 1
	}
	var last string
	for i := 0; i < attempts; i++ {
		p := sample(t, rng)
		if ok, rule := t.satisfied(p); !ok {
			last = rule
			continue
		}
		prob, err := Build(t, p)
		if err != nil {
			return nil, err
		}
		if verr := runValidators(validators, prob); verr != nil {
			if !verr.Retryable {
				return nil, verr
			}
			last = verr.Error()
			continue
		}
		return prob, nil
	}
	return nil, fmt.Errorf("%w: %s after %d attempts (last failure: %s)", ErrConstraintsExhausted, t.ID, attempts, last)
}

// sample draws one value per slot, in slot order, so a fixed seed always
// produces the same parameters.
func sample(t Template, rng *rand.Rand) Params {
	p := NewParams()
	for _, s := range t.Slots {
		d := s.Domain
		switch {
		case len(d.Words) > 0:
			p.Texts[s.Name] = d.Words[rng.IntN(len(d.Words))]
		case len(d.Values) > 0:
			p.Ints[s.Name] = d.Values[rng.IntN(len(d.Values))]
		default:
			step := d.Step
			if step <= 0 {
				step = 1
			}
			n := (d.Max-d.Min)/step + 1
			if n < 1 {
				n = 1
			}
			p.Ints[s.Name] = d.Min + step*rng.Int64N(n)
		}
	}
	if t.Adjust != nil {
		t.Adjust(p)
	}
	return p
}

func runValidators(validators []Validator, p *Problem) *ValidationError {
	for _, v := range validators {
		if err := v.Validate(p); err != nil {
			return err
		}
	}
	return nil
}

// NewSource returns the PCG source for seed. Sessions keep the source so
// its state can be snapshotted.
func NewSource(seed uint64) *rand.PCG {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}
