// Package io persists generated datasets and compares them.
//
// # Layout
//
// A dataset root holds one directory per datatype split, each with parallel
// images/ and labels/ directories. Pair i of a split is stored as i.png in
// both:
//
//	dataset/
//	  manifest.json
//	  train/
//	    images/0.png  images/1.png  ...
//	    labels/0.png  labels/1.png  ...
//	  valid/
//	    images/...
//	    labels/...
//
// Every canvas is written as an 8-bit single-channel PNG.
//
// # Writing
//
// [DatasetWriter] implements the pipeline's sink interface:
//
//	w := io.NewDatasetWriter("dataset")
//	if err := w.Prepare(cfg.SplitNames()); err != nil {
//	    return err
//	}
//	runner, err := pipeline.NewRunner(cfg, w, logger)
//
// After a run, [WriteManifest] records the run id, generator version and
// per-split counts next to the data.
//
// # Comparing
//
// [CompareFolders] checks two dataset roots for pixel-identical PNGs, which
// is how regenerated datasets are verified against a reference copy.
package io
