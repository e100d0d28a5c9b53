package booking

import (
	"fmt"

	"groomify/utils"
)

// NewSchedulingConflict reports that another active appointment holds an
// overlapping interval on the resource. Caller-fixable, never retried.
func NewSchedulingConflict(resourceID string) *utils.ServiceError {
	return utils.NewServiceError(utils.CodeConflictSchedule,
		fmt.Sprintf("time slot already taken on resource %s", resourceID))
}

// NewInvalidTransition reports an illegal state change attempt, naming the
// status the transition required and the one actually found.
func NewInvalidTransition(expected, found string) *utils.ServiceError {
	return utils.NewServiceError(utils.CodeInvalidTransition,
		fmt.Sprintf("expected %s, found %s", expected, found))
}
