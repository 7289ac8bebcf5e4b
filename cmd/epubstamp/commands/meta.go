package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"epubstamp/epub"
)

var (
	metaTitle       string
	metaAuthor      string
	metaDescription string
	metaTags        string
	metaDate        string
	metaLanguage    string
	metaPublisher   string
	metaKeywords    string
	metaOutput      string
)

func init() {
	metaCmd.Flags().StringVarP(&metaTitle, "title", "t", "", "Set title")
	metaCmd.Flags().StringVarP(&metaAuthor, "author", "a", "", "Set author")
	metaCmd.Flags().StringVar(&metaDescription, "description", "", "Set description")
	metaCmd.Flags().StringVar(&metaTags, "tags", "", "Set subjects/tags (comma-separated)")
	metaCmd.Flags().StringVar(&metaDate, "date", "", "Set publication date (YYYY-MM-DD)")
	metaCmd.Flags().StringVar(&metaLanguage, "language", "", "Set language (e.g. en, de)")
	metaCmd.Flags().StringVar(&metaPublisher, "publisher", "", "Set publisher")
	metaCmd.Flags().StringVar(&metaKeywords, "keywords", "", "Set keywords")
	metaCmd.Flags().StringVarP(&metaOutput, "output", "o", "", "Output file path (default: modify in-place)")

	rootCmd.AddCommand(metaCmd)
}

var metaCmd = &cobra.Command{
	Use:   "meta [flags] input.epub",
	Short: "Read or modify a single EPUB's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		book, err := epub.Open(inputFile)
		if err != nil {
			return fmt.Errorf("opening %s: %w", inputFile, err)
		}
		defer book.Close()

		isWriteMode := metaTitle != "" || metaAuthor != "" || metaDescription != "" ||
			metaTags != "" || metaDate != "" || metaLanguage != "" ||
			metaPublisher != "" || metaKeywords != ""
		if !isWriteMode {
			printMetadata(cmd, book)
			return nil
		}

		applyMetaFlags(book.Package)

		outputPath := metaOutput
		if outputPath == "" {
			outputPath = inputFile
		}
		if err := book.Save(outputPath); err != nil {
			return fmt.Errorf("saving EPUB: %w", err)
		}
		cmd.Printf("Saved to %s\n", outputPath)
		return nil
	},
}

func applyMetaFlags(pkg *epub.Package) {
	if metaTitle != "" {
		pkg.SetTitle(metaTitle)
	}
	if metaAuthor != "" {
		pkg.SetAuthor(metaAuthor)
	}
	if metaDescription != "" {
		pkg.SetDescription(metaDescription)
	}
	if metaTags != "" {
		tags := strings.Split(metaTags, ",")
		for i := range tags {
			tags[i] = strings.TrimSpace(tags[i])
		}
		pkg.SetSubjects(tags)
	}
	if metaDate != "" {
		pkg.SetDate(metaDate)
	}
	if metaLanguage != "" {
		pkg.SetLanguage(metaLanguage)
	}
	if metaPublisher != "" {
		pkg.SetPublisher(metaPublisher)
	}
	if metaKeywords != "" {
		pkg.SetKeywords(metaKeywords)
	}
}

func printMetadata(cmd *cobra.Command, book *epub.Book) {
	pkg := book.Package
	cmd.Println("--- Metadata ---")
	cmd.Printf("Title:       %s\n", pkg.GetTitle())
	cmd.Printf("Author:      %s\n", strings.Join(pkg.GetAuthors(), ", "))
	if publisher := pkg.GetPublisher(); publisher != "" {
		cmd.Printf("Publisher:   %s\n", publisher)
	}
	if date := pkg.GetDate(); date != "" {
		cmd.Printf("Published:   %s\n", date)
	}
	cmd.Printf("Language:    %s\n", pkg.GetLanguage())
	if tags := pkg.GetSubjects(); len(tags) > 0 {
		cmd.Printf("Tags:        %s\n", strings.Join(tags, ", "))
	}
	if keywords := pkg.GetKeywords(); keywords != "" {
		cmd.Printf("Keywords:    %s\n", keywords)
	}
	if producer := pkg.GetProducer(); producer != "" {
		cmd.Printf("Producer:    %s\n", producer)
	}
	if desc := pkg.GetDescription(); desc != "" {
		cmd.Printf("Comments:    %s\n", truncate(stripHTML(desc), 200))
	}
}
