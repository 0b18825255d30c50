package evalcmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/bookmeta/internal/eval/dataset"
	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

type inspectOptions struct {
	datasetPath  string
	limit        int
	layout       string
	interactive  bool
	showOCR      bool
	showMetadata bool
}

func executeInspect(ctx context.Context, engine *extraction.Engine, out io.Writer, in io.Reader, opts inspectOptions) error {
	records, err := dataset.NewLoader(opts.datasetPath).LoadSample(opts.limit)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	fmt.Fprintf(out, "Loaded %d records from %s\n", len(records), opts.datasetPath)
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)

	for i, record := range records {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nInspection interrupted.")
			return nil
		default:
		}

		fmt.Fprintf(out, "RECORD %d/%d\n", i+1, len(records))
		fmt.Fprintln(out, strings.Repeat("-", 80))

		if opts.showMetadata {
			printRecordMetadata(out, record)
		}

		page := record.TitlePage()
		if opts.showOCR {
			printOCRPreview(out, page)
		}

		result := engine.Extract(extraction.Input{Text: page, Layout: opts.layout})
		fmt.Fprintf(out, "EXTRACTED (%s):\n", result.Layout)
		fmt.Fprintf(out, "  Title:     %s\n", result.Title)
		fmt.Fprintf(out, "  Author:    %s\n", result.Author)
		fmt.Fprintf(out, "  Publisher: %s\n", result.Publisher)
		fmt.Fprintf(out, "  Year:      %s\n", result.Year)
		fmt.Fprintf(out, "  ISBN:      %s\n", result.ISBN)
		fmt.Fprintln(out)

		if opts.interactive {
			fmt.Fprint(out, "Press Enter to continue to next record (or Ctrl+C to quit)...")

			inputCh := make(chan struct{})
			go func() {
				_, _ = reader.ReadString('\n')
				close(inputCh)
			}()

			select {
			case <-ctx.Done():
				fmt.Fprintln(out, "\nInspection interrupted.")
				return nil
			case <-inputCh:
				fmt.Fprintln(out)
			}
		}
	}

	return nil
}

func printRecordMetadata(out io.Writer, record dataset.InstitutionalBooksRecord) {
	fmt.Fprintf(out, "Barcode:        %s\n", record.BarcodeSource)
	fmt.Fprintf(out, "Title:          %s\n", record.TitleSource)
	fmt.Fprintf(out, "Author:         %s\n", record.AuthorSource)
	fmt.Fprintf(out, "Date:           %s\n", record.GetPrimaryDate())
	fmt.Fprintf(out, "Language:       %s\n", record.LanguageSource)
	if len(record.IdentifiersSource.ISBN) > 0 {
		fmt.Fprintf(out, "ISBN(s):        %s\n", strings.Join(record.IdentifiersSource.ISBN, ", "))
	}
	if record.HathitrustDataExt.URL != "" {
		fmt.Fprintf(out, "HathiTrust URL: %s\n", record.HathitrustDataExt.URL)
	}
	fmt.Fprintf(out, "Pages w/ OCR:   %d\n", len(record.TextByPageSource))
	fmt.Fprintln(out)
}

func printOCRPreview(out io.Writer, page string) {
	const maxRunes = 500

	runes := []rune(page)
	fmt.Fprintf(out, "Title page: %d characters, %d words (approx)\n", len(runes), len(strings.Fields(page)))
	fmt.Fprintln(out, strings.Repeat("-", 80))
	if len(runes) > maxRunes {
		fmt.Fprintln(out, string(runes[:maxRunes]))
		fmt.Fprintf(out, "\n[... truncated, showing first %d of %d characters ...]\n", maxRunes, len(runes))
	} else {
		fmt.Fprintln(out, page)
	}
	fmt.Fprintln(out, strings.Repeat("-", 80))
}
