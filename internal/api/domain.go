package api

import (
	"github.com/Tanmay1202/EnviRon/internal/classify"
	"github.com/Tanmay1202/EnviRon/internal/progress"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Classify classify.System
	Progress progress.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	classifySystem := classify.New(
		runtime.Detector,
		runtime.Locator,
		runtime.Retry,
		runtime.Logger,
	)

	progressSystem := progress.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Classify: classifySystem,
		Progress: progressSystem,
	}
}
