// Copyright 2026 The ptaxml Authors
// SPDX-License-Identifier: Apache-2.0

package contest

// Status is a PTA judge verdict as it appears in the submission
// listing's "status" field.
type Status string

const (
	StatusAccepted            Status = "ACCEPTED"
	StatusWrongAnswer         Status = "WRONG_ANSWER"
	StatusTimeLimitExceeded   Status = "TIME_LIMIT_EXCEEDED"
	StatusCompileError        Status = "COMPILE_ERROR"
	StatusSegmentationFault   Status = "SEGMENTATION_FAULT"
	StatusFloatPointException Status = "FLOAT_POINT_EXCEPTION"
	StatusMemoryLimitExceeded Status = "MEMORY_LIMIT_EXCEEDED"
	StatusNonZeroExitCode     Status = "NON_ZERO_EXIT_CODE"
	StatusRuntimeError        Status = "RUNTIME_ERROR"
	StatusPresentationError   Status = "PRESENTATION_ERROR"
	StatusOutputLimitExceeded Status = "OUTPUT_LIMIT_EXCEEDED"
)

// DefaultAcronym is reported for any verdict outside the known set.
// PTA has verdicts with no judgement counterpart (queued, internal
// error, partially accepted); they all collapse to a wrong answer.
const DefaultAcronym = "WA"

// IsKnown reports whether s is one of the eleven verdicts with a
// judgement definition.
func (s Status) IsKnown() bool {
	switch s {
	case StatusAccepted, StatusWrongAnswer, StatusTimeLimitExceeded,
		StatusCompileError, StatusSegmentationFault, StatusFloatPointException,
		StatusMemoryLimitExceeded, StatusNonZeroExitCode, StatusRuntimeError,
		StatusPresentationError, StatusOutputLimitExceeded:
		return true
	}
	return false
}

// Acronym returns the judgement acronym for s, or DefaultAcronym.
func (s Status) Acronym() string {
	switch s {
	case StatusAccepted:
		return "AC"
	case StatusWrongAnswer:
		return "WA"
	case StatusTimeLimitExceeded:
		return "TLE"
	case StatusCompileError:
		return "CE"
	case StatusSegmentationFault:
		return "SF"
	case StatusFloatPointException:
		return "FPE"
	case StatusMemoryLimitExceeded:
		return "MLE"
	case StatusNonZeroExitCode:
		return "NZEC"
	case StatusRuntimeError:
		return "RE"
	case StatusPresentationError:
		return "PE"
	case StatusOutputLimitExceeded:
		return "OLE"
	default:
		return DefaultAcronym
	}
}

// Solved reports whether a run with this verdict solves its problem.
func (s Status) Solved() bool {
	return s == StatusAccepted
}

// Penalty reports whether a run with this verdict costs penalty time.
// Only compile errors are free; unknown verdicts are penalized like the
// WA they are reported as.
func (s Status) Penalty() bool {
	return s != StatusCompileError
}

// Judgement is one entry of the judgement definition table. Its Penalty
// column describes the verdict for scoreboards and is independent of
// Status.Penalty, the per-run flag: AC is unpenalized here but an
// accepted run still reports penalty=true.
type Judgement struct {
	ID      string
	Acronym string
	Name    string
	Solved  bool
	Penalty bool
}

var judgements = []Judgement{
	{"1", "AC", string(StatusAccepted), true, false},
	{"2", "SF", string(StatusSegmentationFault), false, true},
	{"3", "WA", string(StatusWrongAnswer), false, true},
	{"4", "TLE", string(StatusTimeLimitExceeded), false, true},
	{"5", "CE", string(StatusCompileError), false, false},
	{"6", "FPE", string(StatusFloatPointException), false, true},
	{"7", "MLE", string(StatusMemoryLimitExceeded), false, true},
	{"8", "NZEC", string(StatusNonZeroExitCode), false, true},
	{"9", "RE", string(StatusRuntimeError), false, true},
	{"10", "PE", string(StatusPresentationError), false, true},
	{"11", "OLE", string(StatusOutputLimitExceeded), false, true},
}

// Judgements returns the fixed judgement table in document order.
// The returned slice is a copy.
func Judgements() []Judgement {
	result := make([]Judgement, len(judgements))
	copy(result, judgements)
	return result
}
