// Copyright 2026 The Hugo Blog Authors
// SPDX-License-Identifier: Apache-2.0

package site

import "fmt"

// Status is the process-level pipeline state. Transitions are strictly
// forward:
//
//	NotStarted → Building → BuildFailed        (terminal)
//	NotStarted → Building → Built → Serving    (terminal until kill)
//
// There is no path back from Serving to Building — a rebuild is a new
// process, never a runtime transition.
type Status int

const (
	NotStarted Status = iota
	Building
	BuildFailed
	Built
	Serving
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Building:
		return "building"
	case BuildFailed:
		return "build_failed"
	case Built:
		return "built"
	case Serving:
		return "serving"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Stage names one unit of work in the build. Stages run in a fixed
// order; the first failure aborts the build.
type Stage string

const (
	StageResolveDeps   Stage = "resolve_dependencies"
	StageAcquireEngine Stage = "acquire_engine"
	StagePreflight     Stage = "preflight_content"
	StageRender        Stage = "render"
	StagePublish       Stage = "publish"
)

// StageError is a build failure attributed to a stage. The underlying
// cause is preserved for errors.Is/As; the stage name tells the
// operator which part of the pipeline to look at.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
