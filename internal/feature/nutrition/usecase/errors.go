// Package usecase implements nutrition entry logging, daily aggregation and goals.
package usecase

import "errors"

// ErrGoalsNotFound is returned by a GoalsRepository when the user never saved goals.
var ErrGoalsNotFound = errors.New("nutrition goals not found")
