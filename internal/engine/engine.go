package engine

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/floorsight/floorplan-mcp/internal/calibrate"
	"github.com/floorsight/floorplan-mcp/internal/detection"
	"github.com/floorsight/floorplan-mcp/internal/floorplan"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
	"github.com/floorsight/floorplan-mcp/internal/synth"
)

// StrategyAuto selects the full degradation chain. It is the default.
const StrategyAuto = "auto"

// Options configures an Engine. The zero value is fully usable: auto
// strategy chain, default normalization and detection parameters, the
// flagged 1:1 calibration, and a private synthesizer.
type Options struct {
	// Strategy names a single detector to run, or "auto" (or empty) for
	// the chain. Unknown names surface as an error from Detect.
	Strategy string

	Normalize imaging.NormalizeOptions
	Regions   detection.RegionOptions
	Scan      detection.ScanOptions

	// MergeProximity is the endpoint distance in pixels below which wall
	// candidates coalesce. Zero selects detection.DefaultMergeProximity.
	MergeProximity float64

	// Calibration converts pixel measurements to feet. A zero value
	// selects the flagged 1:1 default.
	Calibration calibrate.Calibration

	// AssumeWidthFt estimates a scale by assuming the drawn plan is this
	// many feet wide. It applies only when Calibration is unset, and is
	// resolved against the processed image width at detection time, after
	// any downscale.
	AssumeWidthFt float64

	// Synth supplies layouts when detection finds nothing. Callers that
	// register reference layouts pass their own so registrations are
	// visible to the engine; nil gets a private instance.
	Synth *synth.Synthesizer
}

// Engine runs detection end to end. Construct with New.
type Engine struct {
	chain       []detection.Strategy
	chainErr    error
	norm        imaging.NormalizeOptions
	cal         calibrate.Calibration
	assumeWidth float64
	synth       *synth.Synthesizer
}

// New builds an engine from opts. A bad strategy name is not reported
// here; it comes back from the first Detect call, so construction sites
// stay unconditional.
func New(opts Options) *Engine {
	cal := opts.Calibration
	if cal.FeetPerPixel <= 0 {
		cal = calibrate.Default()
	}

	syn := opts.Synth
	if syn == nil {
		syn = synth.NewSynthesizer()
	}

	e := &Engine{
		norm:        opts.Normalize,
		cal:         cal,
		assumeWidth: opts.AssumeWidthFt,
		synth:       syn,
	}
	e.chain, e.chainErr = buildChain(opts)
	return e
}

// buildChain assembles the strategy list with the engine's detection
// options injected, then narrows it to one element for a named strategy.
func buildChain(opts Options) ([]detection.Strategy, error) {
	chain := []detection.Strategy{
		&detection.StructuralStrategy{Regions: opts.Regions},
		&detection.ContourStrategy{},
		&detection.AdaptiveStrategy{
			Regions:        opts.Regions,
			Scan:           opts.Scan,
			MergeProximity: opts.MergeProximity,
		},
		&detection.SimpleStrategy{
			Regions:        opts.Regions,
			Scan:           opts.Scan,
			MergeProximity: opts.MergeProximity,
		},
	}

	name := opts.Strategy
	if name == "" || name == StrategyAuto {
		return chain, nil
	}
	for _, s := range chain {
		if s.Name() == name {
			return []detection.Strategy{s}, nil
		}
	}
	return nil, fmt.Errorf("unknown strategy %q (want %s, or %q)",
		name, strings.Join(detection.StrategyNames(), ", "), StrategyAuto)
}

// Calibration returns the configured scale. An assumed-width estimate is
// not reflected here; it depends on the processed image size and shows up
// in each result's ScaleFactor instead.
func (e *Engine) Calibration() calibrate.Calibration {
	return e.cal
}

// RegisterReference stores a curated layout for an exact input file,
// keyed by fingerprint. Later detections of byte-identical input that
// fall through the chain synthesize this layout instead of the grid.
func (e *Engine) RegisterReference(fingerprint string, layout synth.Layout) {
	e.synth.RegisterReferenceLayout(fingerprint, layout)
}

// DetectFile loads and fingerprints an image file, then runs Detect.
func (e *Engine) DetectFile(path string) (*floorplan.DetectionResult, error) {
	img, raw, err := imaging.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return e.Detect(img, synth.Fingerprint(raw))
}

// DetectBytes decodes an in-memory image and runs Detect. Undecodable
// data comes back as an *imaging.DecodeError.
func (e *Engine) DetectBytes(data []byte) (*floorplan.DetectionResult, error) {
	img, _, err := imaging.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	return e.Detect(img, synth.Fingerprint(data))
}

// Detect runs the strategy chain over img and assembles the result.
//
// The image is normalized once; each strategy sees the same buffer. The
// first candidate with at least one room wins and is assembled with the
// winning strategy's name as Method. When every strategy errors or finds
// nothing, the synthesizer supplies a layout for the fingerprint and the
// result carries Method "fallback" with Fallback=true. Decodable input
// therefore always produces a result.
func (e *Engine) Detect(img image.Image, fingerprint string) (*floorplan.DetectionResult, error) {
	if e.chainErr != nil {
		return nil, e.chainErr
	}
	if img == nil {
		return nil, errors.New("detect: nil image")
	}

	g := imaging.Normalize(img, e.norm)

	cal := e.cal
	if e.assumeWidth > 0 && cal.Source == calibrate.SourceDefault {
		cal = calibrate.AssumedWidth(g.Width, e.assumeWidth)
	}

	for _, strat := range e.chain {
		cand, err := strat.Detect(g)
		if err != nil {
			log.Printf("Strategy %s failed: %v", strat.Name(), err)
			continue
		}
		if cand == nil || len(cand.Rooms) == 0 {
			log.Printf("Strategy %s found no rooms", strat.Name())
			continue
		}
		return assembleMeasured(strat.Name(), cand, g, cal), nil
	}

	log.Printf("All strategies exhausted, synthesizing layout for %.12s", fingerprint)
	layout := e.synth.Synthesize(fingerprint, g.Width, g.Height)
	return assembleFallback(layout, g, cal), nil
}
