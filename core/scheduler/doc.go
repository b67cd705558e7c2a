// Package scheduler runs reconciliation passes periodically.
//
// Full passes keep the mirror exact, removals included; incremental passes pick up new
// releases between them for families that can stream releases. Each tick fans out over
// the families with an errgroup.
package scheduler
