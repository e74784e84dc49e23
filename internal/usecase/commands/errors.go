package commands

import (
	"riviera-booking/internal/infra"
	"riviera-booking/internal/pkg/errs"
)

// markRepoErr translates infrastructure error kinds into the usecase
// sentinels. notFound varies per call site (reservation vs resource vs
// payment); everything unrecognized becomes a database failure.
func markRepoErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, notFound)
	case infra.IsKind(err, infra.KindLockTimeout):
		return errs.Mark(err, errs.ErrBusy)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrResourceUnavailable)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrDuplicateRequest)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, errs.ErrValidation)
	case infra.IsKind(err, infra.KindDBFailure):
		return errs.Mark(err, errs.ErrDatabaseFailure)
	default:
		return err
	}
}
