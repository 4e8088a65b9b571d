package app

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"time"

	"pdf-to-txt/config"
	"pdf-to-txt/extract"
)

// printPages opens args.Path with engine and writes each page's text
// followed by a newline to w, in page order. The first failing page aborts
// the run; text already extracted is still flushed.
func printPages(engine extract.Engine, args *Arguments, w io.Writer, logger *log.Logger) (err error) {
	start := sampleResources()
	doc, err := engine.Open(args.Path)
	if err != nil {
		return err
	}
	defer doc.Close()

	logger.Printf("%s: %d pages, %s, engine %s", args.Path, doc.NumPages(),
		config.GetPageWindowDescription(args.First, args.Last), engine.Name())

	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}()

	printed := 0
	last := time.Now()
	for page, perr := range extract.PageRange(doc, args.First, args.Last) {
		if perr != nil {
			return fmt.Errorf("%s: %w", args.Path, perr)
		}
		if _, err := bw.WriteString(page.Text); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		printed++
		logger.Printf("page %d processed in %v (%d chars)", page.Number, time.Since(last), len(page.Text))
		last = time.Now()
	}

	end := sampleResources()
	logger.Printf("%d pages in %v (%s)", printed, end.wall.Sub(start.wall), end.since(start))
	return nil
}
