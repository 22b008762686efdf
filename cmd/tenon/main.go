// Command tenon evaluates a Lisp job script describing timber joints
// and derives the adaptive clearing G-code for them.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/chazu/tenon/pkg/adaptive"
	"github.com/chazu/tenon/pkg/adaptive/concentric"
	"github.com/chazu/tenon/pkg/engine"
	"github.com/chazu/tenon/pkg/gcode"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("tenon: ")

	root := &cobra.Command{
		Use:           "tenon",
		Short:         "Adaptive toolpaths for timber-frame joinery",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newPassesCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRunCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "run <job.lisp>",
		Short: "Evaluate a job script and write its G-code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			spec, evalErrs, err := engine.NewEngine().Evaluate(string(source))
			if err != nil {
				return err
			}
			if len(evalErrs) > 0 {
				for _, e := range evalErrs {
					log.Printf("%s: %s", args[0], e.Error())
				}
				return fmt.Errorf("%d error(s) in %s", len(evalErrs), args[0])
			}
			if len(spec.Mortises) == 0 {
				return fmt.Errorf("%s describes no joints", args[0])
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			solver := concentric.New()
			for _, op := range spec.Operations(solver) {
				start := time.Now()
				res, err := op.Execute(ctx, nil)
				if err != nil {
					return fmt.Errorf("%s: %w", op.Name, err)
				}
				log.Printf("%s: %d regions, %d moves in %s",
					op.Name, len(res.Regions), res.Program.Moves(), time.Since(start).Round(time.Millisecond))
				if res.Partial {
					log.Printf("%s: solve cancelled, program is partial", op.Name)
				}

				fmt.Fprintf(out, "(operation: %s)\n", op.Name)
				if err := gcode.Write(out, res.Program); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newPassesCmd() *cobra.Command {
	d := adaptive.DepthParams{StepDown: 10}

	cmd := &cobra.Command{
		Use:   "passes",
		Short: "Print the depth passes for a set of heights",
		RunE: func(cmd *cobra.Command, args []string) error {
			passes, err := d.Passes()
			if err != nil {
				return err
			}
			for i, z := range passes {
				fmt.Printf("pass %d: Z %.4f\n", i+1, z)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&d.StartDepth, "start", 0, "start depth")
	cmd.Flags().Float64Var(&d.FinalDepth, "final", -60, "final depth")
	cmd.Flags().Float64Var(&d.StepDown, "step-down", 10, "roughing step-down")
	cmd.Flags().Float64Var(&d.FinishStep, "finish-step", 0, "finishing allowance")
	return cmd
}
