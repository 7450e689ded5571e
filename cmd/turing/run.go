package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/turing/cas"
	"github.com/timewinder-dev/turing/model"
)

var (
	debugFlag       bool
	quietFlag       bool
	detectLoopsFlag bool
	maxStepsFlag    int
	wordFlag        string
	intervalFlag    string
)

var runCmd = &cobra.Command{
	Use:   "run SPECFILE",
	Short: "Run a machine until it finishes",
	Args:  cobra.ExactArgs(1),
	Run:   runCommand,
}

func init() {
	runCmd.Flags().BoolVar(&debugFlag, "debug", false, "Print the loaded program before running")
	runCmd.Flags().BoolVar(&quietFlag, "quiet", false, "Don't print each event")
	runCmd.Flags().BoolVar(&detectLoopsFlag, "detect-loops", true, "Stop when the machine repeats a configuration")
	runCmd.Flags().IntVar(&maxStepsFlag, "max-steps", 0, "Stop after this many macro-steps (0 for no limit)")
	runCmd.Flags().StringVar(&wordFlag, "word", "", "Override the input word")
	runCmd.Flags().StringVar(&intervalFlag, "interval", "", "Override the step interval (e.g. 10ms)")
}

// loadSpec loads a description and applies the command line overrides.
func loadSpec(cmd *cobra.Command, filename string) *model.Spec {
	spec, err := model.LoadSpecFromFile(filename)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load specfile")
	}
	if cmd.Flags().Changed("word") {
		spec.Machine.Word = wordFlag
	}
	if cmd.Flags().Changed("interval") {
		spec.Machine.Interval = intervalFlag
	}
	return spec
}

func runCommand(cmd *cobra.Command, args []string) {
	spec := loadSpec(cmd, args[0])
	if debugFlag {
		prog, err := spec.Program()
		if err != nil {
			log.Fatal().Err(err).Msg("Couldn't build program")
		}
		prog.DebugPrint(os.Stderr)
		fmt.Fprintf(os.Stderr, "Word: %q\n\n", spec.Machine.Word)
	}

	m, err := spec.BuildMachine()
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't build machine for specfile")
	}

	var reporter model.Reporter = &model.ColorReporter{Writer: os.Stderr}
	if quietFlag {
		reporter = &model.SilentReporter{}
	}
	m.Subscribe(model.PrintEvents(reporter))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := cas.NewLRUCache(cas.NewMemoryCAS(), 10000)
	fmt.Fprintln(os.Stderr, color.Cyan.Sprint("Running machine..."))
	result, err := model.RunToEnd(ctx, m, model.RunOptions{
		MaxSteps:    maxStepsFlag,
		DetectLoops: detectLoopsFlag,
		CAS:         store,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Run interrupted")
	}

	if result.Loop != nil {
		fmt.Fprint(os.Stderr, model.FormatLoop(*result.Loop, store))
	}
	fmt.Fprint(os.Stderr, model.FormatResult(result))
	stats := store.Stats()
	log.Debug().Int("size", stats.Size).Int("max_size", stats.MaxSize).Msg("configuration cache")

	if err := spec.Check(result); err != nil {
		fmt.Fprint(os.Stderr, model.FormatExpectation(err))
		os.Exit(1)
	}
	if spec.Expect.Outcome == "" && result.Outcome != model.OutcomeFinished {
		os.Exit(1)
	}
	fmt.Println(result.Tape.Trimmed())
}
