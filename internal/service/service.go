package service

import (
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// newID returns a fresh lexicographically sortable entity id, so listings can
// sort by creation order without a sequence counter.
func newID() string {
	return ulid.Make().String()
}

// normalizeEmail folds an address into its canonical stored form. Uniqueness
// checks and lookups always go through this.
func normalizeEmail(email string) string {
	return strings.ToUpper(strings.TrimSpace(email))
}

// logSyncFailure records a failed post-commit oracle fact sync. The local
// write has already succeeded at this point; the two stores reconcile on the
// next successful sync for the same entity, never by rolling back.
func logSyncFailure(log *logrus.Logger, err error, entity, id, op string) {
	if err == nil {
		return
	}
	log.WithError(err).WithFields(logrus.Fields{
		"entity": entity,
		"id":     id,
		"op":     op,
	}).Warn("oracle sync failed")
}
