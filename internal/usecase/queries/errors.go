package queries

import (
	"riviera-booking/internal/infra"
	"riviera-booking/internal/pkg/errs"
)

func markRepoErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return errs.Mark(err, errs.ErrDatabaseFailure)
}
