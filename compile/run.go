// Package compile implements the deck compilation commands: walking input
// sources, running the content pipeline and dispatching rendering backends.
package compile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"dkc/compile/html"
	"dkc/compile/raster"
	"dkc/config"
	"dkc/content"
	"dkc/deck"
	"dkc/state"
)

// Run is the action of the "compile" command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := config.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to png", zap.Error(err))
		format = config.OutputFmtPng
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Deck lists predate UTF-8 discipline, old dumps may use archaic code
	// pages
	cp := cmd.String("force-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting deck text", zap.String("charset", n))
		}
	}

	pipeline, err := content.NewPipeline(ctx, format, log)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, pipeline, src, dst, log)
}

// process determines the input type (directory or single deck list) and
// dispatches accordingly.
func process(ctx context.Context, p *content.Pipeline, src, dst string, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		return processDir(ctx, p, src, dst, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	if !isDeckFile(src) {
		return fmt.Errorf("input was not recognized as a deck list (%s)", src)
	}

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open input (%s): %w", src, err)
	}
	defer file.Close()

	return processDeck(ctx, p, file, filepath.Base(src), dst, log)
}

// processDir walks the directory tree compiling every deck list it finds.
// Failures are logged per deck, the walk always continues.
func processDir(ctx context.Context, p *content.Pipeline, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !isDeckFile(path) {
			log.Debug("Skipping file, not recognized as deck list", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processDeck(ctx, p, file, src, dst, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processDeck compiles a single deck list. "src" is the source path relative
// to the original input (just the base name when a file was specified
// directly), "dst" the destination directory.
func processDeck(ctx context.Context, p *content.Pipeline, r io.Reader, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Compilation starting", zap.String("from", src))
	defer func(start time.Time) {
		// graphics processing may be fragile, one bad deck must not stop a
		// batch
		if r := recover(); r != nil {
			log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		} else {
			log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	c, err := p.Prepare(ctx, selectReader(r, env.CodePage), src, log)
	if err != nil {
		return fmt.Errorf("unable to parse deck list (%s): %w", src, err)
	}
	reportDiagnostics(c, log)

	outputName = buildOutputPath(c, src, dst, env)
	if err := prepareDestination(c, outputName, env, log); err != nil {
		return err
	}

	switch c.OutputFormat {
	case config.OutputFmtPng:
		if err := raster.Generate(ctx, c, outputName, log); err != nil {
			return fmt.Errorf("unable to generate output: %w", err)
		}
	case config.OutputFmtHtml:
		if err := html.Generate(ctx, c, outputName, log); err != nil {
			return fmt.Errorf("unable to generate output: %w", err)
		}
	}

	// store compilation result for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("content/%s.txt", c.ID), []byte(c.String()))
		if c.OutputFormat == config.OutputFmtHtml {
			env.Rpt.Store(fmt.Sprintf("result-%s%s", c.ID, filepath.Ext(outputName)), outputName)
		}
	}
	return nil
}

// prepareDestination enforces the overwrite policy and creates the output
// directory. For paged raster output the first page stands in for the whole
// set during the existence check.
func prepareDestination(c *content.Content, outputName string, env *state.LocalEnv, log *zap.Logger) error {
	probe := outputName
	if c.OutputFormat == config.OutputFmtPng {
		probe = raster.PageFileName(outputName, 1)
	}

	if _, err := os.Stat(probe); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", probe)
		}
		log.Warn("Overwriting existing output", zap.String("file", probe))
		if err := removeExisting(c, outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(filepath.Dir(outputName), 0755)
}

// removeExisting drops previous output, all numbered pages included so stale
// pages from a longer previous run cannot survive next to fresh ones.
func removeExisting(c *content.Content, outputName string) error {
	if c.OutputFormat != config.OutputFmtPng {
		return os.Remove(outputName)
	}
	stale, err := filepath.Glob(raster.PageFilePattern(outputName))
	if err != nil {
		return err
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}

// reportDiagnostics summarizes accumulated pipeline diagnostics for the
// operator. Individual diagnostics were already logged where they occurred.
func reportDiagnostics(c *content.Content, log *zap.Logger) {
	if len(c.Diags) == 0 {
		return
	}
	log.Info("Deck compiled with diagnostics",
		zap.Int("skipped", deck.CountKind(c.Diags, deck.DiagSkippedLine)),
		zap.Int("anomalies", deck.CountKind(c.Diags, deck.DiagParseAnomaly)),
		zap.Int("unresolved", deck.CountKind(c.Diags, deck.DiagResolutionMiss)),
		zap.Int("duplicate_names", deck.CountKind(c.Diags, deck.DiagDuplicateName)),
		zap.Int("duplicate_art", deck.CountKind(c.Diags, deck.DiagDuplicateArt)))
}

// isDeckFile accepts plain text deck lists by extension.
func isDeckFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

// selectReader wraps r with a decoder when an input code page was forced.
func selectReader(r io.Reader, cp encoding.Encoding) io.Reader {
	if cp == nil {
		return r
	}
	return transform.NewReader(r, cp.NewDecoder())
}
