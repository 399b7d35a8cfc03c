package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/meenmo/mbslib/report"
	"github.com/meenmo/mbslib/sim"
	"github.com/meenmo/mbslib/store"
)

func main() {
	cfg := sim.DefaultConfig

	flag.IntVar(&cfg.Runs, "runs", cfg.Runs, "Monte Carlo paths")
	flag.IntVar(&cfg.PoolSize, "pool", cfg.PoolSize, "Number of loans in the pool")
	flag.IntVar(&cfg.Months, "months", cfg.Months, "Projection horizon in months")
	flag.Float64Var(&cfg.CPR, "cpr", cfg.CPR, "Annualized conditional prepayment rate")
	flag.Float64Var(&cfg.CDR, "cdr", cfg.CDR, "Annualized conditional default rate")
	flag.Float64Var(&cfg.Recovery, "recovery", cfg.Recovery, "Recovery rate on defaulted balance")
	flag.Float64Var(&cfg.DiscountRate, "disc", cfg.DiscountRate, "Annual discount rate")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel path workers (0 = one per CPU)")
	dsn := flag.String("dsn", "", "Postgres DSN for run persistence (default $DATABASE_URL)")
	verbose := flag.Bool("v", false, "Show standard errors alongside values")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: mbsprice [flags]")
		fmt.Fprintln(os.Stderr, "Price a sequential-pay mortgage structure by Monte Carlo.")
		flag.PrintDefaults()
		return
	}

	// Optional .env for DATABASE_URL; absence is fine.
	_ = godotenv.Load()
	if *dsn == "" {
		*dsn = os.Getenv("DATABASE_URL")
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "mbsprice: %v\n", err)
		os.Exit(2)
	}

	res, err := sim.MonteCarlo(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mbsprice: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Print(report.FormatVerbose(res))
	} else {
		fmt.Print(report.Format(res))
	}

	if *dsn != "" {
		if err := persist(*dsn, cfg, res); err != nil {
			fmt.Fprintf(os.Stderr, "mbsprice: %v\n", err)
			os.Exit(1)
		}
	}
}

func persist(dsn string, cfg sim.Config, res *sim.Result) error {
	st, err := store.Open(dsn)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.SaveResult(cfg, res)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved run %s\n", id)
	return nil
}
