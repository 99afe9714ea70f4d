// Package setup defines the contracts of the setup/upgrade pipeline: data
// patches, the history of applied patches, area codes, and the run lock that
// keeps two upgrades from running at once.
package setup

import (
	"context"
	"time"
)

// DataPatch is a one-off data change applied during setup upgrade.
//
// A patch runs at most once per environment: after Apply returns nil its name
// is recorded in the patch history and later upgrades skip it. Apply should
// still be safe to rerun, since a failure after partial writes leaves the patch
// unrecorded.
type DataPatch interface {
	// Name uniquely identifies the patch in the history
	Name() string

	// Apply performs the data change
	Apply(ctx context.Context) error

	// Dependencies lists patch names that must be applied first
	Dependencies() []string

	// Aliases lists former names the patch may already be recorded under
	Aliases() []string
}

// AppliedPatch is one row of the patch history
type AppliedPatch struct {
	Name      string
	AppliedAt time.Time
}

// PatchHistory records which patches have been applied
type PatchHistory interface {
	// IsApplied reports whether a patch with this name has been recorded
	IsApplied(ctx context.Context, name string) (bool, error)

	// MarkApplied records the patch; recording an already applied patch is a no-op
	MarkApplied(ctx context.Context, name string) error

	// List returns every recorded patch ordered by application time
	List(ctx context.Context) ([]AppliedPatch, error)
}
