// Package studio is the core engine of a browser-style website and
// creative-asset builder: it validates untrusted template JSON into a
// renderable document, computes deterministic layout geometry, and renders
// the result onto a retained-mode canvas scene.
//
// # Overview
//
// The pipeline runs raw template JSON through four stages:
//
//	raw JSON → schema.Validate → assets.Preloader → layout.Apply → render.Renderer
//
// Each stage is a separate package with no hidden coupling:
//
//   - schema: document model and a total, coercing validator. Garbage in,
//     renderable document out; the only error is a non-object root.
//   - assets: parallel image/font preloading with timeouts and placeholder
//     substitution. The preload as a whole never fails.
//   - layout: pure constraint resolution (fixed/hug/fill) to absolute
//     pixel geometry. Deterministic, no I/O.
//   - render: walks document plus geometry and builds nodes on a
//     scene.Canvas, isolating per-layer failures.
//   - scene: the narrow canvas port plus node types; scene/ggcanvas is the
//     adapter over the gg drawing context for raster export.
//
// Alongside the pipeline, two wire-contract packages define the persisted
// and transmitted forms of a whole site:
//
//   - bundle: the versioned SiteBundle aggregate with factory, mutation,
//     query, diff, and validation helpers. Bundles are immutable values.
//   - utp: the UTP/1 message envelope spoken between a host application
//     and an embedded site preview.
//
// pages splits one AI-generated text blob into routed page documents, and
// retry provides the backoff policy for outbound calls.
//
// # Logging
//
// By default studio produces no log output. Call [SetLogger] to enable
// logging across all subpackages.
package studio
