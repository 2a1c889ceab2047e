// Command pcatool decomposes audio into principal components by spectral
// PCA and serves an interactive remixing API.
//
// Usage:
//
//	pcatool [flags]
//	pcatool -cli -input song.wav [flags]
//
// Without -cli it starts the HTTP server. With -cli it processes the input
// file once and writes one WAV file per extracted component.
//
// Examples:
//
//	pcatool -port 3000
//	pcatool -cli -input song.wav -num-components 5
//	pcatool -cli -input song.wav -window-size 4096 -hop-size 1024 -output-dir out
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-pca/pca"
	"github.com/cwbudde/algo-pca/server"
	"github.com/cwbudde/algo-pca/session"
	"github.com/cwbudde/algo-pca/wav"
)

func main() {
	cli := flag.Bool("cli", false, "process a file directly instead of serving HTTP")
	input := flag.String("input", "", "input audio file (WAV), CLI mode only")
	numComponents := flag.Int("num-components", 3, "number of principal components to extract")
	outputDir := flag.String("output-dir", ".", "output directory for component files, CLI mode only")
	windowSize := flag.Int("window-size", 2048, "FFT window size (power of two)")
	hopSize := flag.Int("hop-size", 512, "hop size between windows")
	port := flag.Int("port", 3000, "port for the HTTP server")
	flag.Parse()

	if *cli {
		if err := runCLI(*input, *numComponents, *windowSize, *hopSize, *outputDir); err != nil {
			fmt.Fprintf(os.Stderr, "pcatool: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runServer(*windowSize, *hopSize, *port); err != nil {
		fmt.Fprintf(os.Stderr, "pcatool: %v\n", err)
		os.Exit(1)
	}
}

func runServer(windowSize, hopSize, port int) error {
	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	srv := server.New(session.NewStore(), log, server.Config{
		WindowSize: windowSize,
		HopSize:    hopSize,
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info("starting server",
		zap.String("addr", addr),
		zap.Int("window_size", windowSize),
		zap.Int("hop_size", hopSize),
	)

	return http.ListenAndServe(addr, srv.Router())
}

func runCLI(input string, numComponents, windowSize, hopSize int, outputDir string) error {
	if input == "" {
		return fmt.Errorf("input file required in CLI mode")
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	fmt.Printf("Loading audio file: %s\n", input)

	samples, sampleRate, err := wav.Decode(data)
	if err != nil {
		return err
	}

	fmt.Printf("Processing with %d components...\n", numComponents)

	result, err := pca.Decompose(samples, sampleRate, numComponents, windowSize, hopSize)
	if err != nil {
		return err
	}

	fmt.Printf("Eigenvalues for top %d components:\n", len(result.Components))
	for _, c := range result.Components {
		fmt.Printf("  Component %d: eigenvalue = %.4f, variance = %.2f%%\n",
			c.Index+1, c.Eigenvalue, c.VarianceRatio)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	for _, c := range result.Components {
		outPath := filepath.Join(outputDir, fmt.Sprintf("%s_component_%d.wav", stem, c.Index+1))
		fmt.Printf("Saving: %s\n", outPath)

		encoded, err := wav.Encode(c.Waveform, result.SampleRate)
		if err != nil {
			return err
		}

		if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
			return err
		}
	}

	fmt.Printf("Done! Extracted %d principal components.\n", len(result.Components))
	return nil
}
