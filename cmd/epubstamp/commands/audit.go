package commands

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"epubstamp/epub"
)

var auditWorkers int

func init() {
	auditCmd.Flags().IntVar(&auditWorkers, "workers", 8, "Number of concurrent readers")
	rootCmd.AddCommand(auditCmd)
}

var auditCmd = &cobra.Command{
	Use:   "audit <path>",
	Short: "Scan EPUBs for problems (read-only)",
	Long: `Audit recursively opens every EPUB under the given path and reports
files that cannot be parsed or that have no title. No file is modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]

		var files []string
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".epub") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return err
		}

		cmd.Printf("Scanning %d files...\n", len(files))

		workers := auditWorkers
		if workers < 1 {
			workers = 1
		}

		type result struct {
			path string
			err  error
			warn string
		}

		jobs := make(chan string, len(files))
		results := make(chan result, len(files))

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for path := range jobs {
					book, err := epub.Open(path)
					if err != nil {
						results <- result{path: path, err: err}
						continue
					}
					r := result{path: path}
					if book.Package.GetTitle() == "" {
						r.warn = "no title"
					}
					book.Close()
					results <- r
				}
			}()
		}

		for _, f := range files {
			jobs <- f
		}
		close(jobs)
		wg.Wait()
		close(results)

		success := 0
		failed := 0
		for r := range results {
			switch {
			case r.err != nil:
				cmd.Printf("[FAIL] %s: %v\n", r.path, r.err)
				failed++
			case r.warn != "":
				cmd.Printf("[WARN] %s: %s\n", r.path, r.warn)
				success++
			default:
				success++
			}
		}

		cmd.Printf("Scan complete. Success: %d, Failed: %d\n", success, failed)
		return nil
	},
}
