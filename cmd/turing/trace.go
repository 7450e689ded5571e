package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/timewinder-dev/turing/model"
)

var traceCmd = &cobra.Command{
	Use:   "trace SPECFILE",
	Short: "Step through a machine interactively",
	Long: `Reads one command per line from stdin:

  s (or empty)  advance one phase
  r             run on the clock
  p             pause the clock
  u             unpause the clock
  x             reset and reload the description
  q             quit`,
	Args: cobra.ExactArgs(1),
	Run:  traceCommand,
}

func init() {
	traceCmd.Flags().StringVar(&wordFlag, "word", "", "Override the input word")
	traceCmd.Flags().StringVar(&intervalFlag, "interval", "", "Override the step interval (e.g. 10ms)")
}

func traceCommand(cmd *cobra.Command, args []string) {
	spec := loadSpec(cmd, args[0])
	prog, err := spec.Program()
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't build program")
	}
	prog.DebugPrint(os.Stdout)

	m, err := spec.BuildMachine()
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't build machine for specfile")
	}
	defer m.Reset()
	m.Subscribe(model.PrintEvents(&model.ColorReporter{Writer: os.Stdout}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s %s > ", color.Gray.Sprint(m.Phase()), model.FormatTape(m.Tape()))
		if !in.Scan() {
			break
		}
		switch strings.TrimSpace(in.Text()) {
		case "", "s":
			if m.Halted() {
				fmt.Println("machine has halted; x to reset")
				continue
			}
			m.Step()
		case "r":
			m.Run(ctx)
		case "p":
			m.Pause()
		case "u":
			m.Unpause()
		case "x":
			m.Reset()
			if err := m.LoadProgram(prog); err != nil {
				log.Fatal().Err(err).Msg("Couldn't reload program")
			}
			m.LoadWord(spec.Machine.Word)
		case "q":
			return
		default:
			fmt.Println("commands: s, r, p, u, x, q")
		}
	}
	if err := in.Err(); err != nil {
		log.Error().Err(err).Msg("reading commands")
	}
}
