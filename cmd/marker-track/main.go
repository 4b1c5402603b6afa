package main

import (
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/LdDl/marker-track/render"
	"github.com/LdDl/marker-track/track"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetDefault("video.pattern", "*.png")
	viper.SetDefault("video.fps", 25.0)
	viper.SetDefault("tracking.strategy", "greedy")
	viper.SetDefault("output.dir", "output")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error: Could not read config file, got '%v'", err)
	}

	if !viper.IsSet("tracking.threshold") || viper.GetString("video.frames_dir") == "" {
		log.Fatalf("Error: Missing critical configurations (tracking.threshold, video.frames_dir)")
	}

	strategy, err := parseStrategy(viper.GetString("tracking.strategy"))
	if err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}
	threshold := uint8(viper.GetInt("tracking.threshold"))
	fps := viper.GetFloat64("video.fps")
	outputDir := viper.GetString("output.dir")
	overlayEnabled := viper.GetBool("output.overlay")
	plotEnabled := viper.GetBool("output.plot")

	if err := os.MkdirAll(outputDir, 0766); err != nil {
		log.Fatalf("Error Creating '%s' directory, got '%v'", outputDir, err)
	}
	overlayDir := filepath.Join(outputDir, "overlay")
	if overlayEnabled {
		if err := os.MkdirAll(overlayDir, 0766); err != nil {
			log.Fatalf("Error Creating '%s' directory, got '%v'", overlayDir, err)
		}
	}

	source, err := newFrameSource(viper.GetString("video.frames_dir"), viper.GetString("video.pattern"))
	if err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}

	first, err := source.Next()
	if err != nil {
		log.Fatalf("Error reading first frame, got '%v'", err)
	}

	mask, err := parseMaskRects(viper.GetStringSlice("mask.rects"), first.Width, first.Height)
	if err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}

	dt := 1.0 / fps
	session := track.NewSession(threshold, strategy, viper.GetBool("tracking.predictive"), dt)
	session.OnWarning = func(w track.Warning) {
		log.Printf("Warning: %s", w)
	}
	if overlayEnabled {
		session.OnFrameTracked = func(frameIndex int, frame *track.Frame, positions []track.Point) {
			if err := writeOverlay(overlayDir, frameIndex, frame, positions); err != nil {
				log.Fatalf("Error writing overlay for frame %d, got '%v'", frameIndex, err)
			}
		}
	}

	markers, err := session.Init(first, mask)
	if err != nil {
		log.Fatalf("Error initializing session on frame %d, got '%v'", first.Index, err)
	}
	log.Printf("Session %s: tracking %d markers over %d frames", session.ID, markers, source.Len())

	// The first frame participates in tracking too: initialization fixes
	// identities but appends no trajectory row.
	frame := first
	for {
		if _, err := session.Advance(frame); err != nil {
			log.Fatalf("Error advancing frame %d, got '%v'", frame.Index, err)
		}
		frame, err = source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error reading frame, got '%v'", err)
		}
	}

	trajectory := session.Trajectory()
	csvPath := filepath.Join(outputDir, "trajectories.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		log.Fatalf("Error creating '%s', got '%v'", csvPath, err)
	}
	if err := trajectory.WriteCSV(csvFile); err != nil {
		csvFile.Close()
		log.Fatalf("Error writing trajectories, got '%v'", err)
	}
	if err := csvFile.Close(); err != nil {
		log.Fatalf("Error closing '%s', got '%v'", csvPath, err)
	}

	if plotEnabled {
		if err := render.SaveTrajectoryPlots(trajectory, fps, filepath.Join(outputDir, "plots")); err != nil {
			log.Fatalf("Error writing plots, got '%v'", err)
		}
	}

	log.Printf("Done: %d frames, %d warnings, trajectories in '%s'", trajectory.Len(), len(session.Warnings()), csvPath)
}

func parseStrategy(name string) (track.AssignStrategy, error) {
	switch name {
	case "greedy":
		return track.AssignGreedy, nil
	case "hungarian":
		return track.AssignHungarian, nil
	default:
		return 0, fmt.Errorf("unknown assignment strategy '%s', want 'greedy' or 'hungarian'", name)
	}
}

func writeOverlay(dir string, frameIndex int, frame *track.Frame, positions []track.Point) error {
	img := render.Overlay(frame, positions)
	file, err := os.Create(filepath.Join(dir, fmt.Sprintf("frame_%06d.png", frameIndex)))
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
