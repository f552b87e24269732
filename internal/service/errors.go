package service

import (
	pkgerrors "sports-scheduler/pkg/errors"
)

// Business errors. Each is marked with a kind from pkg/errors so handlers
// can fall back to a status class for anything they do not map explicitly.

// ── auth & users ──
var (
	ErrInvalidCredentials = pkgerrors.New(pkgerrors.ErrPermissionDenied, "invalid username or password")
	ErrAccountDisabled    = pkgerrors.New(pkgerrors.ErrPermissionDenied, "account is disabled")
	ErrWrongPassword      = pkgerrors.New(pkgerrors.ErrValidation, "current password is incorrect")
	ErrForbidden          = pkgerrors.New(pkgerrors.ErrPermissionDenied, "insufficient permissions")
	ErrUserNotFound       = pkgerrors.New(pkgerrors.ErrNotFound, "user not found")
	ErrUsernameTaken      = pkgerrors.New(pkgerrors.ErrConflict, "username or email already exists")
	ErrInvalidRole        = pkgerrors.New(pkgerrors.ErrValidation, "invalid role")
	ErrRoleNotAllowed     = pkgerrors.New(pkgerrors.ErrPermissionDenied, "you cannot grant this role")
	ErrSelfDeactivate     = pkgerrors.New(pkgerrors.ErrValidation, "you cannot deactivate your own account")
	ErrNotAnOfficial      = pkgerrors.New(pkgerrors.ErrValidation, "user is not an official")
)

// ── games & assignments ──
var (
	ErrGameNotFound        = pkgerrors.New(pkgerrors.ErrNotFound, "game not found")
	ErrOfficialNotFound    = pkgerrors.New(pkgerrors.ErrNotFound, "official not found")
	ErrOfficialInactive    = pkgerrors.New(pkgerrors.ErrValidation, "official is inactive")
	ErrDuplicateAssignment = pkgerrors.New(pkgerrors.ErrConflict, "official is already assigned to this game")
	ErrTimeConflict        = pkgerrors.New(pkgerrors.ErrConflict, "official is already assigned to another game at the same date and time")
	ErrAssignmentNotFound  = pkgerrors.New(pkgerrors.ErrNotFound, "assignment not found")
	ErrOutOfScope          = pkgerrors.New(pkgerrors.ErrPermissionDenied, "you do not have access to this league")
	ErrInvalidTransition   = pkgerrors.New(pkgerrors.ErrConflict, "assignment can no longer be answered")
	ErrNotAssignedOfficial = pkgerrors.New(pkgerrors.ErrPermissionDenied, "only the assigned official can respond")
	ErrLinkGroupTooSmall   = pkgerrors.New(pkgerrors.ErrValidation, "at least two games are required to link")
)

// ── leagues, fees & billing ──
var (
	ErrLeagueNotFound      = pkgerrors.New(pkgerrors.ErrNotFound, "league not found")
	ErrLeagueExists        = pkgerrors.New(pkgerrors.ErrConflict, "a league with this name and season already exists")
	ErrFeeNotFound         = pkgerrors.New(pkgerrors.ErrNotFound, "fee not found")
	ErrFeeLevelExists      = pkgerrors.New(pkgerrors.ErrConflict, "a fee for this level already exists")
	ErrBillingNotFound     = pkgerrors.New(pkgerrors.ErrNotFound, "billing structure not found")
	ErrBillingLevelExists  = pkgerrors.New(pkgerrors.ErrConflict, "a billing structure for this level already exists")
	ErrBillToNotFound      = pkgerrors.New(pkgerrors.ErrNotFound, "bill-to entity not found")
	ErrBillAmountTooSmall  = pkgerrors.New(pkgerrors.ErrValidation, "bill amount must be at least 0.01")
	ErrBillAmountTooLarge  = pkgerrors.New(pkgerrors.ErrValidation, "bill amount must be at most 999999.99")
	ErrInvalidBillToEmail  = pkgerrors.New(pkgerrors.ErrValidation, "email must contain @")
	ErrLevelNotFound       = pkgerrors.New(pkgerrors.ErrNotFound, "level not found")
	ErrLevelExists         = pkgerrors.New(pkgerrors.ErrConflict, "this league already has that level")
	ErrInvalidDateRange    = pkgerrors.New(pkgerrors.ErrValidation, "date_from must not be after date_to")
)

// ── locations & presets ──
var (
	ErrLocationNotFound = pkgerrors.New(pkgerrors.ErrNotFound, "location not found")
	ErrLocationExists   = pkgerrors.New(pkgerrors.ErrConflict, "a location with this name already exists")
	ErrPresetNotFound   = pkgerrors.New(pkgerrors.ErrNotFound, "filter preset not found")
)

// ── transfer, calendar & assistant ──
var (
	ErrEmptyFile         = pkgerrors.New(pkgerrors.ErrValidation, "file contains no data rows")
	ErrMissingColumns    = pkgerrors.New(pkgerrors.ErrValidation, "file is missing required columns")
	ErrTooManyRows       = pkgerrors.New(pkgerrors.ErrValidation, "file has too many rows")
	ErrNothingToExport   = pkgerrors.New(pkgerrors.ErrNotFound, "no rows to export")
	ErrFeedTokenInvalid  = pkgerrors.New(pkgerrors.ErrPermissionDenied, "calendar link is invalid or expired")
	ErrHelpTopicNotFound = pkgerrors.New(pkgerrors.ErrNotFound, "help topic not found")
)

// isBusinessError reports whether err carries a kind, i.e. is an expected
// outcome rather than a storage failure worth an error log.
func isBusinessError(err error) bool {
	return pkgerrors.Kind(err) != nil
}
