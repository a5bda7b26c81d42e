package split

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSplitType = errors.New("unknown split type")
	ErrMissingConfig    = errors.New("missing config for split type")
)

// Config is the wire shape of a split choice: a type tag plus the payload
// for that type. ParseConfig converts it into a Strategy so the rest of
// the code never handles a half-filled config.
type Config struct {
	Type           SplitType       `json:"type"`
	ExactConfig    *ExactConfig    `json:"exact_config,omitempty"`
	ItemizedConfig *ItemizedConfig `json:"itemized_config,omitempty"`
}

// ExactConfig carries the per-member amounts for an exact split.
type ExactConfig struct {
	Amounts map[string]float64 `json:"amounts"`
}

// ItemizedConfig carries the item list for an itemized split.
type ItemizedConfig struct {
	Items []Item `json:"items"`
}

// ParseConfig validates a wire config and returns the strategy it names.
func ParseConfig(cfg Config) (Strategy, error) {
	switch cfg.Type {
	case SplitTypeEqual:
		return Equal{}, nil
	case SplitTypeExact:
		if cfg.ExactConfig == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, cfg.Type)
		}
		return Exact{Amounts: cfg.ExactConfig.Amounts}, nil
	case SplitTypeItemized:
		if cfg.ItemizedConfig == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, cfg.Type)
		}
		return Itemized{Items: cfg.ItemizedConfig.Items}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitType, cfg.Type)
	}
}
