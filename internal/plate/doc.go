// Package plate locates and extracts 96-well growth-curve measurements from
// loosely structured plate-reader exports.
//
// The pipeline inside the package is load -> detect -> extract -> reshape:
// a file is read verbatim into a RawTable of tagged cells, classified against
// the two known export layouts (LegacyGrid and ColumnarCycle), mined for
// (time, OD) samples per well, and finally flattened into long-format
// MeasurementRecords in row-major well order. Structural anomalies inside a
// measurement block are reported and skipped; an input yielding no samples at
// all is an error.
package plate
