// Package engine implements an in-memory spreadsheet formula engine: a
// workbook of sheets, each a sparse grid of cell content, a tokenless
// recursive-descent formula parser, a case-insensitive function registry,
// and an on-demand evaluator that recurses into referenced cells at read
// time rather than maintaining a dependency graph.
package engine
