package catalog

import (
	"fmt"

	"modelbench/domain/core"
)

// Layer is one dense layer of the configurable network
type Layer struct {
	Units      int    `json:"units"`
	Activation string `json:"activation"`
}

// NetworkConfig is the model_config payload for the neural network endpoint
type NetworkConfig struct {
	Layers       []Layer `json:"layers"`
	LearningRate float64 `json:"learning_rate"`
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batch_size"`
	ProblemType  Task    `json:"problem_type"`
}

var activations = map[string]bool{
	"relu":    true,
	"sigmoid": true,
	"tanh":    true,
	"softmax": true,
	"linear":  true,
}

// DefaultNetworkConfig returns a single 32-unit relu layer regression setup
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Layers:       []Layer{{Units: 32, Activation: "relu"}},
		LearningRate: 0.001,
		Epochs:       50,
		BatchSize:    16,
		ProblemType:  TaskRegression,
	}
}

// Validate checks the config before it is sent to the training API
func (c NetworkConfig) Validate() error {
	if len(c.Layers) == 0 {
		return core.NewInvalidInputError("layers", "must not be empty")
	}
	for i, l := range c.Layers {
		if l.Units <= 0 {
			return core.NewInvalidInputError(fmt.Sprintf("layers[%d].units", i), "must be positive")
		}
		if !activations[l.Activation] {
			return core.NewInvalidInputError(fmt.Sprintf("layers[%d].activation", i), fmt.Sprintf("%q is not supported", l.Activation))
		}
	}
	if c.LearningRate <= 0 || c.LearningRate >= 1 {
		return core.NewInvalidInputError("learning_rate", "must be in (0, 1)")
	}
	if c.Epochs <= 0 {
		return core.NewInvalidInputError("epochs", "must be positive")
	}
	if c.BatchSize <= 0 {
		return core.NewInvalidInputError("batch_size", "must be positive")
	}
	if c.ProblemType != TaskRegression && c.ProblemType != TaskClassification {
		return core.NewInvalidInputError("problem_type", "must be regression or classification")
	}
	return nil
}
