// Package personalize adapts the generic memory model to an individual's
// review history.
//
// An [Engine] ingests a full review history via [Engine.SetHistory] and
// derives from it a performance profile, a personalized weight vector,
// predicted retention curves, and learning-pattern insights. Every
// derivation is recomputed from scratch on ingestion; there is no
// incremental path and no staleness detection, so callers must call
// SetHistory again after the history changes.
//
// Weight adjustment stays disabled until the history holds at least 50
// reviews; below that the base weights pass through unchanged.
package personalize
