// Package driver wires contact generation, the collector, the mobility
// operator, and the solver orchestrator together around one
// scenario.Fixture. It has no spec.md component of its own; it exists so
// cmd/rodsim and the solversvc end-to-end tests share one assembly path
// instead of duplicating it.
package driver

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/rodconstraint/internal/collector"
	"github.com/san-kum/rodconstraint/internal/comm"
	"github.com/san-kum/rodconstraint/internal/contactgen"
	"github.com/san-kum/rodconstraint/internal/mobility"
	"github.com/san-kum/rodconstraint/internal/scenario"
	"github.com/san-kum/rodconstraint/internal/solversvc"
	"github.com/san-kum/rodconstraint/internal/sparsemat"
)

// Run drives one full step for fixture f: generates contacts and
// linkages, assembles the collectors, builds the slender-body mobility
// operator, and runs setup/solveConstraints/writebackGamma.
func Run(f scenario.Fixture, log *logrus.Entry) (solversvc.Output, error) {
	n := len(f.Bodies)
	nThreads := 1
	if n > 64 {
		nThreads = 4
	}

	uniColl := collector.New(nThreads)
	biColl := collector.New(nThreads)

	contactgen.CollectRodRod(f.Bodies, f.Pairs, f.Options, uniColl)
	contactgen.CollectRodWall(f.Bodies, f.Options, uniColl)
	if err := contactgen.CollectLinkages(f.Bodies, f.Options, biColl); err != nil {
		return solversvc.Output{}, fmt.Errorf("driver: linkage generation: %w", err)
	}

	mob := mobility.NewSlenderBody(f.Bodies, f.Viscosity)
	mobMap := sparsemat.ContiguousDofMap{N: n}

	s := solversvc.New(comm.Local{}, log)
	if err := s.SetControlParams(solversvc.Params{Dt: f.Dt, Res: f.Res, MaxIte: f.MaxIte}); err != nil {
		return solversvc.Output{}, err
	}
	if err := s.Setup(uniColl, biColl, mob, mobMap, f.VNC); err != nil {
		return solversvc.Output{}, err
	}
	out, err := s.SolveConstraints()
	if err != nil {
		return solversvc.Output{}, err
	}
	if err := s.WritebackGamma(); err != nil {
		return solversvc.Output{}, err
	}
	return out, nil
}
