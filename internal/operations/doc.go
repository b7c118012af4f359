// Package operations records the execution of a report run.
//
// A RunManifest is created per run. The pipeline reports each stage's start,
// completion or failure to it, and the CLI registers every file it writes
// together with a BLAKE2b-256 checksum so a later reader can verify that the
// report on disk is the one the run produced.
//
//	manifest := operations.NewRunManifest(runID, inputPath)
//	manifest.RecordStageStart("read", "Read source workbook")
//	manifest.RecordStageCompletion("read", nil, map[string]interface{}{"records": 120})
//	_ = manifest.AddOutput("workbook", "workbook", outPath, "write")
//	manifest.Complete()
//	_ = manifest.SaveToFile(manifestPath)
package operations
