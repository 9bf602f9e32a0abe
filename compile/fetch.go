package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dkc/assets"
	"dkc/content"
	"dkc/state"
)

// RunFetch is the action of the "fetch" command: it collects card
// identifiers from the given deck lists and downloads missing art into the
// configured asset directory.
func RunFetch(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("fetch")

	if cmd.Args().Len() == 0 {
		return errors.New("no deck lists have been specified")
	}

	ids, err := collectIdentifiers(ctx, cmd.Args().Slice(), log)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		log.Info("No card identifiers found, nothing to fetch")
		return nil
	}

	log.Info("Fetch starting", zap.Int("identifiers", len(ids)), zap.String("destination", env.Cfg.Deck.Assets.Dir))
	defer func(start time.Time) {
		log.Info("Fetch completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	fetcher := assets.NewFetcher(env.Cfg.Deck.Assets.Dir, env.Cfg.Deck.Assets.Sources, log)
	stored, err := fetcher.Fetch(ctx, ids)
	log.Info("Fetch results", zap.Int("stored", stored), zap.Int("requested", len(ids)))
	return err
}

// collectIdentifiers gathers distinct identifiers from every deck list named
// on the command line, directories included.
func collectIdentifiers(ctx context.Context, args []string, log *zap.Logger) ([]string, error) {
	var (
		ids  []string
		seen = make(map[string]struct{})
		errs error
	)

	appendFile := func(path string) {
		file, err := os.Open(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		defer file.Close()

		found, err := content.Identifiers(file, log)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to read deck list (%s): %w", path, err))
			return
		}
		for _, id := range found {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fi, err := os.Stat(arg)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if !fi.Mode().IsDir() {
			appendFile(arg)
			continue
		}
		err = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil || !info.Mode().IsRegular() || !isDeckFile(path) {
				return nil
			}
			appendFile(path)
			return nil
		})
		if err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return ids, errs
}
