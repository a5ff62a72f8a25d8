// Package engine orchestrates the full detection pipeline: decode,
// normalize, run the strategy chain, and assemble a calibrated
// DetectionResult.
//
// The engine never fails on decodable input. Strategies that error or
// find no rooms are logged and skipped; when the whole chain comes up
// empty the synthesizer supplies a plausible layout and the result is
// marked Fallback=true. The only error paths are undecodable bytes, a
// misconfigured strategy name, and a nil image.
//
// An Engine is immutable after New and safe for concurrent use; the
// synthesizer it shares with the caller carries its own locking. Engines
// are cheap to build, so callers wanting per-request options construct
// one per request.
//
// Detection is CPU-bound and non-preemptible: there is no context
// plumbing through the pipeline. Callers that need a deadline wrap
// Detect in a goroutine and abandon the result.
package engine
