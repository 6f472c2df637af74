// Package catalog lists the models the remote training API can run.
package catalog

import (
	"strings"

	"modelbench/domain/core"
)

// Task describes what kind of target a model predicts
type Task string

const (
	TaskRegression     Task = "regression"
	TaskClassification Task = "classification"
	TaskEither         Task = "either"
)

// Model is one trainable model exposed by the remote API
type Model struct {
	Name string `json:"name"` // display name, e.g. "Random Forest"
	Slug string `json:"slug"` // endpoint path segment, e.g. "random-forest"
	Task Task   `json:"task"`
	// Configurable is true for models that take a NetworkConfig.
	Configurable bool `json:"configurable"`
}

// NeuralNetwork is the display name of the configurable network model.
const NeuralNetwork = "Custom Deep Neural Network"

var models = []Model{
	{Name: "Linear Regression", Slug: "linear-regression", Task: TaskRegression},
	{Name: "Logistic Regression", Slug: "logistic-regression", Task: TaskClassification},
	{Name: "Decision Tree", Slug: "decision-trees", Task: TaskEither},
	{Name: "Random Forest", Slug: "random-forest", Task: TaskEither},
	{Name: "Bagging", Slug: "bagging", Task: TaskRegression},
	{Name: "Boosting", Slug: "boosting", Task: TaskClassification},
	{Name: "Support Vector Machine (SVM)", Slug: "svm", Task: TaskEither},
	{Name: NeuralNetwork, Slug: "deep-neural-network", Task: TaskEither, Configurable: true},
}

// All returns the catalog in display order
func All() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// Lookup resolves a display name or endpoint slug, case-insensitively.
func Lookup(name string) (Model, error) {
	key := strings.TrimSpace(name)
	for _, m := range models {
		if strings.EqualFold(m.Name, key) || strings.EqualFold(m.Slug, key) {
			return m, nil
		}
	}
	return Model{}, core.ErrUnknownModel
}
