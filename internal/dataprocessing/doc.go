// Package dataprocessing provides the ingestion pipeline that turns a raw
// ETF holdings file into an aggregated per-country allocation.
//
// # Architecture
//
// The package is organized into five components:
//
// 1. Parser: reads a delimited text file, trying separator/encoding
// combinations with a manual line-splitting fallback, and produces a RawTable
// 2. Detector: inspects column names and sampled content to guess which
// columns hold weights and locations
// 3. Classifier: flags rows as cash/currency positions using textual markers
// 4. Normalizer: canonicalizes country-name spellings via a static alias table
// 5. Aggregator: sums equity weight per country and computes percentages and
// the Herfindahl concentration index
//
// The Pipeline type wires them together for callers that want the whole flow.
//
// # Data Flow
//
//	Holdings file → Parser → RawTable → Detector → ColumnAssignment
//	             → Processor (Classifier + Normalizer) → HoldingRecords
//	             → Aggregator → CountryAggregate
//
// # Error Handling
//
// Parsing and detection failures are fatal and carry diagnostics (the parse
// attempts tried, the columns available). Individual rows with unusable
// weight fields are dropped and counted rather than aborting the run; the
// count travels to the final aggregate.
//
// # Testing
//
// The package includes table-driven tests for all components. Use
// table-driven tests when adding new functionality.
package dataprocessing
