package util

import "errors"

var (
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrCartaNotFound          = errors.New("carta not found")
	ErrEnrollmentNotFound     = errors.New("no active enrollment found")
	ErrActiveEnrollmentExists = errors.New("participant already has an active cycle")
	ErrCartaNotApproved       = errors.New("carta has not been approved yet")
	ErrTasksAlreadyGenerated  = errors.New("tasks have already been generated for this carta")
	ErrNoConfiguredActions    = errors.New("carta has no actions with a usable recurrence configuration")
	ErrInvalidExtensionDate   = errors.New("extension date must be after the current cycle end date")
	ErrGroupCycleNotSupported = errors.New("group cycles are not supported yet")
	ErrCollectionUnknown      = errors.New("collection not found")
	ErrEvidenceNotFound       = errors.New("evidence not found")
	ErrEvidenceNotApproved    = errors.New("evidence has not been approved")
	ErrPermissionDenied       = errors.New("permission denied")
)
