package main

import (
	"fmt"
	"log"

	"github.com/meenmo/mbslib/report"
	"github.com/meenmo/mbslib/sim"
)

func main() {
	cfg := sim.DefaultConfig
	cfg.Runs = 30
	cfg.Seed = 1

	res, err := sim.MonteCarlo(cfg)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(report.Format(res))
}
