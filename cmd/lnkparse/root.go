package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/go-errors/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andrewstucki/lnkparse"
	"github.com/andrewstucki/lnkparse/internal/config"
	"github.com/andrewstucki/lnkparse/internal/logging"
	"github.com/andrewstucki/lnkparse/lnk"
)

type rootOptions struct {
	verbosity  int
	configPath string
	strict     bool
	encoding   string
	workers    int
	format     string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "lnkparse [flags] <file|dir>...",
		Short: "Decode Windows shortcut (.lnk) files",
		Long: `lnkparse decodes Windows Shell Link files and prints their target,
strings, location information and extra data blocks.

Directories are walked and every shortcut found in them is decoded.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup(opts.verbosity, stderr)
			cfg, err := config.Load(opts.configPath, changedFlags(cmd, opts))
			if err != nil {
				return err
			}
			logger.Debug().
				Bool("strict", cfg.Strict).
				Str("encoding", cfg.Encoding).
				Int("workers", cfg.Workers).
				Str("format", cfg.Format).
				Msg("configuration loaded")
			return run(cfg, args, stdout, stderr, opts.verbosity >= 2)
		},
	}

	flags := cmd.Flags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	flags.StringVar(&opts.configPath, "config", "", "TOML configuration file")
	flags.BoolVar(&opts.strict, "strict", true, "Fail on structural inconsistencies")
	flags.StringVar(&opts.encoding, "encoding", "", "Codepage of non-Unicode strings (default: host locale)")
	flags.IntVar(&opts.workers, "workers", 0, "Number of files decoded in parallel (default: number of CPUs)")
	flags.StringVar(&opts.format, "format", config.FormatText, "Output format: text or json")
	return cmd
}

// changedFlags returns the configuration keys given on the command line so
// they win over the file and environment.
func changedFlags(cmd *cobra.Command, opts *rootOptions) map[string]interface{} {
	values := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("strict") {
		values["strict"] = opts.strict
	}
	if flags.Changed("encoding") {
		values["encoding"] = opts.encoding
	}
	if flags.Changed("workers") {
		values["workers"] = opts.workers
	}
	if flags.Changed("format") {
		values["format"] = opts.format
	}
	return values
}

type input struct {
	path string
	size int64
	// set for files reached by walking a directory, which are only decoded
	// when they sniff as shortcuts
	walked bool
}

type file struct {
	Name string `json:"name"`
	*lnkparse.Info

	index int
}

type failure struct {
	index int
	path  string
	err   error
}

func run(cfg *config.Config, args []string, stdout, stderr io.Writer, stacks bool) error {
	inputs, err := collectInputs(args)
	if err != nil {
		return err
	}

	decodeOptions := []lnk.Option{
		lnk.WithStrict(cfg.Strict),
		lnk.WithLogger(logging.For("lnk")),
	}
	if cfg.Encoding != "" {
		decodeOptions = append(decodeOptions, lnk.WithSystemDefaultEncoding(cfg.Encoding))
	}

	var (
		mutex    sync.Mutex
		files    []file
		failures []failure
	)
	logger := logging.For("cli")
	p := newPool(cfg.Workers)
	for i, in := range inputs {
		p.Enqueue(func() {
			info, err := decodeInput(in, decodeOptions, logger)
			mutex.Lock()
			defer mutex.Unlock()
			switch {
			case err != nil:
				failures = append(failures, failure{index: i, path: in.path, err: err})
			case info != nil:
				files = append(files, file{Name: in.path, Info: info, index: i})
			}
		})
	}
	p.Wait()
	p.Release()

	// restore input order
	sort.Slice(files, func(a, b int) bool { return files[a].index < files[b].index })
	sort.Slice(failures, func(a, b int) bool { return failures[a].index < failures[b].index })

	for _, f := range failures {
		fmt.Fprintf(stderr, "Unable to decode '%s': %v\n", f.path, f.err)
		var stackErr *errors.Error
		if stacks && errors.As(f.err, &stackErr) {
			fmt.Fprintln(stderr, stackErr.ErrorStack())
		}
	}

	if err := render(stdout, cfg.Format, files); err != nil {
		return err
	}
	if len(failures) > 0 {
		return errors.Errorf("%d of %d files could not be decoded", len(failures), len(inputs))
	}
	return nil
}

func collectInputs(args []string) ([]input, error) {
	inputs := []input{}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Errorf("file '%s' not found", arg)
			}
			return nil, errors.Wrap(err, 0)
		}
		if !info.IsDir() {
			inputs = append(inputs, input{path: arg, size: info.Size()})
			continue
		}
		if err := filepath.WalkDir(arg, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.Type().IsRegular() {
				return nil
			}
			info, err := entry.Info()
			if err != nil {
				return err
			}
			if info.Size() == 0 {
				return nil
			}
			inputs = append(inputs, input{path: path, size: info.Size(), walked: true})
			return nil
		}); err != nil {
			return nil, errors.Wrap(err, 0)
		}
	}
	return inputs, nil
}

// sniffSize covers the header size field and the link CLSID.
const sniffSize = 20

func decodeInput(in input, opts []lnk.Option, logger zerolog.Logger) (*lnkparse.Info, error) {
	f, err := os.Open(in.path)
	if err != nil {
		return nil, errors.Wrap(err, 0)
	}
	defer f.Close()

	if in.walked {
		head := make([]byte, sniffSize)
		n, err := io.ReadFull(f, head)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, errors.Wrap(err, 0)
		}
		if !lnkparse.IsShortcut(head[:n]) {
			logger.Debug().Str("path", in.path).Msg("skipping file that is not a shortcut")
			return nil, nil
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, errors.Wrap(err, 0)
		}
	}

	info, err := lnkparse.Parse(f, opts...)
	if err != nil {
		return nil, err
	}
	if info.LNK == nil {
		return nil, errors.Errorf("not a shell link (detected %s)", info.MIME)
	}
	logger.Info().Str("path", in.path).Int64("size", in.size).Msg("decoded shortcut")
	return info, nil
}
