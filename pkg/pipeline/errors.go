package pipeline

import "github.com/pkg/errors"

var (
	ErrStageNameMustBeSet = errors.New("stage name must be set")
	ErrStageFnMustBeSet   = errors.New("stage fn must be set")
)
