package mnemo

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// NumWeights is the length of the model weight vector.
const NumWeights = 21

// Global knob defaults and ranges.
const (
	DefaultRequestRetention = 0.9
	MinRequestRetention     = 0.5
	MaxRequestRetention     = 0.99

	DefaultMaximumInterval = 365
	MinMaximumInterval     = 1
	MaxMaximumInterval     = 1825
)

// DefaultWeights are the FSRS v6 default weight values
// from py-fsrs / fsrs4anki Wiki FSRS-6. Never mutated.
var DefaultWeights = [NumWeights]float64{
	0.212, 1.2931, 2.3065, 8.2956, // w[0..3]  initial stability S₀(G)
	6.4133, 0.8334, 3.0194, 0.001, // w[4..7]  difficulty params
	1.8722, 0.1666, 0.796, 1.4835, // w[8..11] recall/forget stability params
	0.0614, 0.2629, 1.6483, 0.6014, // w[12..15] forget stability / hard penalty
	1.8729, 0.5425, 0.0912, 0.0658, // w[16..19] easy bonus / short-term params
	0.1542, // w[20] long-term scaling
}

// WeightLowerBounds defines the minimum allowed value for each weight.
var WeightLowerBounds = [NumWeights]float64{
	0.001, 0.001, 0.001, 0.001,
	1.0, 0.001, 0.001, 0.001,
	0.0, 0.0, 0.001, 0.001,
	0.001, 0.001, 0.0, 0.0,
	1.0, 0.0, 0.0, 0.0,
	0.1,
}

// WeightUpperBounds defines the maximum allowed value for each weight.
var WeightUpperBounds = [NumWeights]float64{
	100.0, 100.0, 100.0, 100.0,
	10.0, 4.0, 4.0, 0.75,
	4.5, 0.8, 3.5, 5.0,
	0.25, 0.9, 4.0, 1.0,
	6.0, 2.0, 2.0, 0.8,
	0.8,
}

// Parameters holds the model weight vector and the global scheduling knobs.
// A Parameters value is always usable after Repair: any malformed field is
// silently replaced by its default instead of producing an error.
type Parameters struct {
	Weights           []float64 `json:"weights" yaml:"weights"`
	RequestRetention  float64   `json:"request_retention" yaml:"request_retention"`
	MaximumInterval   int       `json:"maximum_interval" yaml:"maximum_interval"`
	EnableFuzz        bool      `json:"enable_fuzz" yaml:"enable_fuzz"`
	ShortTermMemory   bool      `json:"short_term_memory" yaml:"short_term_memory"`
	LongTermStability bool      `json:"long_term_stability" yaml:"long_term_stability"`
}

// DefaultParameters returns a Parameters with the default weight vector
// and knobs. Fuzz is enabled; the memory-factor extensions are not.
func DefaultParameters() Parameters {
	w := make([]float64, NumWeights)
	copy(w, DefaultWeights[:])
	return Parameters{
		Weights:          w,
		RequestRetention: DefaultRequestRetention,
		MaximumInterval:  DefaultMaximumInterval,
		EnableFuzz:       true,
	}
}

// Repair describes one field corrected during Parameters.Repair.
type Repair struct {
	Field    string  // "weights", "request_retention", or "maximum_interval".
	Index    int     // weight index; -1 for knobs.
	Rejected float64 // the value that was replaced.
	Restored float64 // the default it was replaced with.
}

func (r Repair) String() string {
	if r.Field == "weights" {
		return fmt.Sprintf("w[%d]: %v -> %v", r.Index, r.Rejected, r.Restored)
	}
	return fmt.Sprintf("%s: %v -> %v", r.Field, r.Rejected, r.Restored)
}

// Repair validates the parameter set in place and silently corrects every
// violation to its default. A weight vector of the wrong length is replaced
// by the full default vector; individual NaN, Inf, or out-of-range weights
// are replaced index by index; out-of-range knobs are reset. Repair never
// fails; the returned list records what was corrected.
func (p *Parameters) Repair() []Repair {
	var repairs []Repair

	if len(p.Weights) != NumWeights {
		repairs = append(repairs, Repair{Field: "weights", Index: -1,
			Rejected: float64(len(p.Weights)), Restored: NumWeights})
		p.Weights = make([]float64, NumWeights)
		copy(p.Weights, DefaultWeights[:])
	} else {
		for i, w := range p.Weights {
			if math.IsNaN(w) || math.IsInf(w, 0) || w < WeightLowerBounds[i] || w > WeightUpperBounds[i] {
				repairs = append(repairs, Repair{Field: "weights", Index: i,
					Rejected: w, Restored: DefaultWeights[i]})
				p.Weights[i] = DefaultWeights[i]
			}
		}
	}

	if math.IsNaN(p.RequestRetention) || p.RequestRetention < MinRequestRetention || p.RequestRetention > MaxRequestRetention {
		repairs = append(repairs, Repair{Field: "request_retention", Index: -1,
			Rejected: p.RequestRetention, Restored: DefaultRequestRetention})
		p.RequestRetention = DefaultRequestRetention
	}

	if p.MaximumInterval < MinMaximumInterval || p.MaximumInterval > MaxMaximumInterval {
		repairs = append(repairs, Repair{Field: "maximum_interval", Index: -1,
			Rejected: float64(p.MaximumInterval), Restored: DefaultMaximumInterval})
		p.MaximumInterval = DefaultMaximumInterval
	}

	return repairs
}

// clone returns a deep copy of the parameters.
func (p Parameters) clone() Parameters {
	out := p
	out.Weights = make([]float64, len(p.Weights))
	copy(out.Weights, p.Weights)
	return out
}

// ParametersUpdate is a partial override merged over an existing
// Parameters by Apply. Nil fields are left unchanged. Weights may hold
// up to NumWeights values; they override the vector from index 0.
type ParametersUpdate struct {
	Weights           []float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
	RequestRetention  *float64  `json:"request_retention,omitempty" yaml:"request_retention,omitempty"`
	MaximumInterval   *int      `json:"maximum_interval,omitempty" yaml:"maximum_interval,omitempty"`
	EnableFuzz        *bool     `json:"enable_fuzz,omitempty" yaml:"enable_fuzz,omitempty"`
	ShortTermMemory   *bool     `json:"short_term_memory,omitempty" yaml:"short_term_memory,omitempty"`
	LongTermStability *bool     `json:"long_term_stability,omitempty" yaml:"long_term_stability,omitempty"`
}

// Apply merges the update into a copy of p and returns it. The result is
// not repaired; callers that need the validity invariant call Repair.
func (p Parameters) Apply(u ParametersUpdate) Parameters {
	out := p.clone()
	if u.Weights != nil {
		n := len(u.Weights)
		if n > NumWeights {
			n = NumWeights
		}
		copy(out.Weights[:n], u.Weights[:n])
	}
	if u.RequestRetention != nil {
		out.RequestRetention = *u.RequestRetention
	}
	if u.MaximumInterval != nil {
		out.MaximumInterval = *u.MaximumInterval
	}
	if u.EnableFuzz != nil {
		out.EnableFuzz = *u.EnableFuzz
	}
	if u.ShortTermMemory != nil {
		out.ShortTermMemory = *u.ShortTermMemory
	}
	if u.LongTermStability != nil {
		out.LongTermStability = *u.LongTermStability
	}
	return out
}

// ParametersFromYAML decodes a YAML document over the defaults and repairs
// the result. Unknown or malformed numeric fields are silently corrected,
// so the returned Parameters always satisfies the validity invariant.
func ParametersFromYAML(data []byte) (Parameters, []Repair, error) {
	p := DefaultParameters()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Parameters{}, nil, fmt.Errorf("mnemo: decode parameters: %w", err)
	}
	repairs := p.Repair()
	return p, repairs, nil
}

// ToYAML encodes the parameters as a YAML document.
func (p Parameters) ToYAML() ([]byte, error) {
	out, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("mnemo: encode parameters: %w", err)
	}
	return out, nil
}
