package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/floorsight/floorplan-mcp/internal/calibrate"
	"github.com/floorsight/floorplan-mcp/internal/engine"
	"github.com/floorsight/floorplan-mcp/internal/imaging"
	"github.com/floorsight/floorplan-mcp/internal/render"
	"github.com/floorsight/floorplan-mcp/internal/server"
	"github.com/floorsight/floorplan-mcp/internal/store"
	"github.com/floorsight/floorplan-mcp/internal/synth"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.BoolVar(&showVersion, "v", false, "print version information and exit (shorthand)")
	detectPath := flag.String("detect", "", "detect rooms in the given image, print the result JSON to stdout, and exit")
	strategy := flag.String("strategy", "auto", "detection strategy for -detect: auto, structural, contour, adaptive or simple")
	scale := flag.Float64("scale", 0, "feet-per-pixel scale factor for -detect (0 keeps the flagged 1:1 default)")
	assumeWidth := flag.Float64("assume-width-ft", 0, "estimate the scale for -detect by assuming the plan spans this many feet across")
	overlayPath := flag.String("overlay", "", "with -detect, also write an annotated copy of the image to this path")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("floorplan-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	// Logging goes to stderr; stdout carries the MCP protocol (or the
	// result JSON in one-shot mode).
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Optional .env for local runs.
	_ = godotenv.Load()

	if *detectPath != "" {
		if err := runDetect(*detectPath, *strategy, *scale, *assumeWidth, *overlayPath); err != nil {
			log.Fatalf("Detection error: %v", err)
		}
		return
	}

	if os.Getenv("FLOORPLAN_MCP_LOG_LEVEL") == "debug" {
		log.Printf("Floorplan MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(store.NewMemory())
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "floorplan-mcp - MCP server for floor plan detection")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage: floorplan-mcp [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run with no options to serve the MCP protocol over stdin/stdout,")
	fmt.Fprintln(out, "configured in your MCP client (e.g., Claude Desktop). Use -detect")
	fmt.Fprintln(out, "for a one-shot detection that prints JSON and exits.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment variables:")
	fmt.Fprintln(out, "  FLOORPLAN_MCP_LOG_LEVEL=debug    Enable debug logging")
}

// runDetect is the scripting path: one image in, one JSON document out.
func runDetect(path, strategy string, scale, assumeWidth float64, overlayPath string) error {
	opts := engine.Options{
		Strategy:      strategy,
		AssumeWidthFt: assumeWidth,
	}
	if scale > 0 {
		opts.Calibration = calibrate.Calibration{
			FeetPerPixel: scale,
			Source:       calibrate.SourceManual,
			Verified:     true,
		}
	}

	img, raw, err := imaging.LoadFile(path)
	if err != nil {
		return err
	}
	res, err := engine.New(opts).Detect(img, synth.Fingerprint(raw))
	if err != nil {
		return err
	}

	if overlayPath != "" {
		if err := imaging.Save(overlayPath, render.Overlay(img, res, render.Options{})); err != nil {
			return err
		}
		log.Printf("Overlay written to %s", overlayPath)
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
