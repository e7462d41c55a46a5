// Package core holds the inventory discrepancy logic, independent of HTTP.
//
// # Flow
//
// An uploaded spreadsheet is parsed by [ParseInventory] into a [Dataset] of
// [InventoryRecord]s and stored on the caller's [Session]. Every page, API call
// or export then runs [GenerateReport] against the [Manifest], producing one
// [ReportRow] per (aircraft, required part) pair, and narrows the rows to the
// requested [View] with [ApplyView].
//
// Descriptions match after [NormalizeDescription] (trim, then lowercase).
// Aircraft ids are compared exactly.
//
// # Sessions
//
// A [SessionStore] keeps one optional Dataset per browser session. Sessions
// expire after a period of inactivity; [SessionStore.StartJanitor] removes them.
//
// # Errors
//
// Sentinel errors ([ErrNoDataset], [ErrMissingColumn], ...) are wrapped with
// context and checked with errors.Is. [MapError] turns any error into a
// [UserMessage] with a support code.
package core
