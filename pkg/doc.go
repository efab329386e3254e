// Package pkg provides the libraries behind voronoigen, a generator of
// synthetic Voronoi image/label datasets for training segmentation models.
//
// # Overview
//
// Each diagram is a pair of 8-bit gray canvases built from the same random
// seed points: an image in which every Voronoi region has one gray level,
// and a label in which only the region boundaries are drawn. The pkg
// directory is organized as follows:
//
//  1. [config] - YAML/TOML configuration loading and validation
//  2. [sampling], [geometry], [render] - seed points, Voronoi facets, rasterization
//  3. [postprocess] - crop, elliptical masks, Gaussian and Perlin noise
//  4. [tile] - cutting canvases into equally sized training tiles
//  5. [pipeline] - the per-diagram generator and the batch runner
//  6. [io] - dataset layout on disk, manifest, folder comparison
//  7. [rng], [params], [errors], [observability], [buildinfo] - shared support
//
// # Architecture
//
// The data flow for one diagram:
//
//	rng.Stream (seeded per datatype split)
//	         ↓
//	    [sampling] points → [geometry] facets
//	         ↓
//	    [render] image + label canvases
//	         ↓
//	    [postprocess] stages → [tile] pairs → [io] PNG files
//
// # Quick Start
//
//	src, err := config.Load("config.yaml")
//	if err != nil {
//	    return err
//	}
//	if res := src.Validate(); !res.Valid {
//	    return fmt.Errorf("invalid config: %v", res.Errors)
//	}
//	cfg, err := src.Decode()
//	if err != nil {
//	    return err
//	}
//
//	writer := io.NewDatasetWriter(cfg.OutputDir)
//	if err := writer.Prepare(cfg.SplitNames()); err != nil {
//	    return err
//	}
//	runner, err := pipeline.NewRunner(cfg, writer, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Run(ctx, pipeline.Options{})
//
// # Reproducibility
//
// Every split owns one [rng.Stream] seeded from its configured seed, and
// diagrams within a split are drawn strictly in order. Running the same
// configuration twice produces byte-identical datasets.
package pkg
