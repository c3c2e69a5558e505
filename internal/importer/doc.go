// Package importer wires transcript parsing to the persistent store: read a
// document, segment and extract it, then commit the records student by
// student. Each run carries a correlation ID and the source file name on
// every log line so skipped or rolled-back students can be reconciled by
// hand afterwards.
package importer
