package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docsift/outliner"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file.pdf]",
	Short: "Extract a JSON heading outline from one PDF or a directory of PDFs",
	Long: `Extract reads a PDF and writes its heading outline as JSON with the shape

  {"title": "...", "outline": [{"text": "...", "level": "H1", "page": 1}]}

With a file argument the outline is written to stdout, or to --output if
given. With --input-dir every *.pdf in the directory is processed with a
bounded worker pool, writing one <name>.json per input; a file that fails
is reported on stderr and skipped while the rest still produce output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir := viper.GetString("extract.input-dir")

		switch {
		case inputDir != "" && len(args) > 0:
			return fmt.Errorf("pass either a file argument or --input-dir, not both")
		case inputDir != "":
			return runBatch(inputDir)
		case len(args) == 1:
			return runSingle(args[0])
		default:
			return fmt.Errorf("nothing to do: pass a PDF file or --input-dir")
		}
	},
}

func init() {
	extractCmd.Flags().StringP("output", "o", "", "output file (single) or directory (batch; default: input directory)")
	extractCmd.Flags().String("input-dir", "", "process every *.pdf in this directory")
	extractCmd.Flags().Int("workers", 4, "concurrent documents in batch mode")
	extractCmd.Flags().Bool("compact", false, "emit compact JSON instead of indented")
	extractCmd.Flags().Bool("no-bookmarks", false, "ignore embedded PDF bookmarks and always run heuristic detection")

	viper.BindPFlag("extract.output", extractCmd.Flags().Lookup("output"))
	viper.BindPFlag("extract.input-dir", extractCmd.Flags().Lookup("input-dir"))
	viper.BindPFlag("extract.workers", extractCmd.Flags().Lookup("workers"))
	viper.BindPFlag("extract.compact", extractCmd.Flags().Lookup("compact"))
	viper.BindPFlag("extract.no-bookmarks", extractCmd.Flags().Lookup("no-bookmarks"))

	rootCmd.AddCommand(extractCmd)
}

// extractOne runs the pipeline for one PDF and renders the JSON output.
func extractOne(path string) ([]byte, error) {
	doc, err := outliner.Open(path).
		Bookmarks(!viper.GetBool("extract.no-bookmarks")).
		Outline()
	if err != nil {
		return nil, err
	}
	return doc.ToJSON(!viper.GetBool("extract.compact"))
}

func runSingle(path string) error {
	data, err := extractOne(path)
	if err != nil {
		return err
	}

	out := viper.GetString("extract.output")
	if out == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(out, append(data, '\n'), 0o644)
}

func runBatch(inputDir string) error {
	pdfs, err := findPDFs(inputDir)
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		fmt.Fprintf(os.Stderr, "No PDF files found in %s\n", inputDir)
		return nil
	}

	outDir := viper.GetString("extract.output")
	if outDir == "" {
		outDir = inputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	workers := viper.GetInt("extract.workers")
	if workers < 1 {
		workers = 1
	}

	fmt.Fprintf(os.Stderr, "Processing %d PDF files with %d workers\n", len(pdfs), workers)

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []string

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := processBatchFile(path, outDir); err != nil {
					fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", path, err)
					mu.Lock()
					failures = append(failures, path)
					mu.Unlock()
				}
			}
		}()
	}

	for _, path := range pdfs {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	if len(failures) == len(pdfs) {
		return fmt.Errorf("all %d files failed", len(pdfs))
	}
	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "Done: %d succeeded, %d failed\n",
			len(pdfs)-len(failures), len(failures))
	} else {
		fmt.Fprintf(os.Stderr, "Done: %d succeeded\n", len(pdfs))
	}
	return nil
}

// processBatchFile extracts one PDF and writes <stem>.json next to the
// batch output. A failed file leaves no partial output behind.
func processBatchFile(path, outDir string) error {
	data, err := extractOne(path)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(outDir, stem+".json")
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Fprintf(os.Stderr, "Generated %s\n", outPath)
	return nil
}

func findPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var pdfs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			pdfs = append(pdfs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(pdfs)
	return pdfs, nil
}
