// Package t212 reconciles a Trading 212 combined statement into a
// point-in-time net-worth snapshot.
//
// The pipeline is a strictly sequential fold followed by a pure projection:
//   - Statement parsing: the broker CSV is read into immutable records,
//     tolerating malformed rows and mixed timestamp formats.
//   - Ledger accumulation: the time-ordered records are folded into a cash
//     balance and per-ticker positions with average-cost basis.
//   - Valuation: each surviving position is priced through a Quoter and
//     normalized to the reporting currency through a Converter, both small
//     capability interfaces with live and deterministic implementations.
//   - Reporting: the frozen snapshot is ranked and aggregated into the
//     figures of the plain-text account report.
//
// This package is the foundational logic of the `pfa` command-line tool;
// markdown rendering, Gemini commentary and Telegram delivery live in the
// renderer, agent and telegram packages respectively.
package t212
