// Package exporter writes country allocation results to files and to the
// console.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// appending, and UTF-8 BOM for Excel compatibility.
//
// AllocationExporter: Renders a country aggregate as a CSV table or as a
// JSON document carrying the summary counts and concentration metrics.
//
// WriteReport: Renders a human-readable console report with per-country
// percentages, a TOTAL line and the top-5 concentration.
//
// Example usage:
//
//	exp := exporter.NewAllocationExporter(logger)
//	if err := exp.Export(aggregate, "country_allocation.csv", "csv"); err != nil {
//		return err
//	}
//	exporter.WriteReport(os.Stdout, aggregate)
package exporter
