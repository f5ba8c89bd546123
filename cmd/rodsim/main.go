// Command rodsim drives rodconstraint's deterministic scenario fixtures
// through a full setup/solveConstraints/writebackGamma cycle for manual
// inspection: a one-shot `run`, a `list-scenarios` lookup, and a
// `watch` live TUI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/rodconstraint/internal/driver"
	"github.com/san-kum/rodconstraint/internal/scenario"
	"github.com/san-kum/rodconstraint/internal/solversvc"
	"github.com/san-kum/rodconstraint/internal/tui"
)

var (
	scenarioName string
	verbose      bool
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd := &cobra.Command{
		Use:   "rodsim",
		Short: "rod constraint-resolution fixture runner",
	}
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log at debug level")

	listCmd := &cobra.Command{
		Use:   "list-scenarios",
		Short: "list every deterministic scenario fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scenario.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one scenario fixture to convergence (or maxIte) and report the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			return runScenario(log, scenarioName)
		},
	}
	runCmd.Flags().StringVar(&scenarioName, "scenario", "two_rods_head_to_head", "scenario fixture name")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run a scenario fixture in a live TUI showing BCQP residual convergence",
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchScenario(log, scenarioName)
		},
	}
	watchCmd.Flags().StringVar(&scenarioName, "scenario", "two_rods_head_to_head", "scenario fixture name")

	rootCmd.AddCommand(listCmd, runCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenario(log *logrus.Logger, name string) error {
	fx, err := scenario.Build(name)
	if err != nil {
		return err
	}

	out, err := driver.Run(fx, logrus.NewEntry(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "solve failed: %v\n", err)
		if isNumericFailure(err) {
			os.Exit(1)
		}
		return err
	}

	fmt.Printf("scenario: %s\n", fx.Name)
	fmt.Printf("termination: %s\n", out.BCQP.Reason)
	fmt.Printf("residual: %.3e\n", out.BCQP.Residual)
	fmt.Printf("iterations: %d\n", out.BCQP.Iterations)
	fmt.Printf("gamma: %v\n", out.BCQP.Gamma)
	return nil
}

func watchScenario(log *logrus.Logger, name string) error {
	fx, err := scenario.Build(name)
	if err != nil {
		return err
	}
	return tui.Watch(fx, logrus.NewEntry(log))
}

func isNumericFailure(err error) bool {
	return errors.Is(err, solversvc.ErrNumericFailure)
}
