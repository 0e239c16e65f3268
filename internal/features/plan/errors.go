package plan

import (
	"errors"
)

var (
	ErrPlanNotFound  = errors.New("premium plan not found")
	ErrMissingFields = errors.New("all plan fields are required")
	ErrNegativePrice = errors.New("plan price cannot be negative")
)
