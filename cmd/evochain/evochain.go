package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"wsb.com/evochain/internals/chain"
	"wsb.com/evochain/internals/config"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "evochain"
	app.Usage = "Evolutionary proof-of-work ledger"
	app.Version = "1.0.0"
	app.Writer = os.Stdout
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to JSON config file",
		},
		cli.IntFlag{
			Name:  "difficulty",
			Usage: "Initial difficulty (leading zero hash characters)",
		},
		cli.IntFlag{
			Name:  "blocks",
			Usage: "Number of blocks to mine after genesis",
			Value: 3,
		},
		cli.DurationFlag{
			Name:  "timeout",
			Usage: "Overall mining deadline (0 = none)",
		},
		cli.StringFlag{
			Name:  "log.level",
			Usage: "Log level (debug|info|warn|error)",
		},
	}
	app.Action = run
	return app
}

func run(c *cli.Context) error {
	cfg := *config.New()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadConfiguration(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.IsSet("difficulty") {
		cfg.InitialDifficulty = c.Int("difficulty")
	}
	if c.IsSet("log.level") {
		cfg.LogLevel = c.String("log.level")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	ctx := context.Background()
	if timeout := c.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	showBanner()

	ledgerChain, err := chain.New(chain.Options{
		InitialDifficulty:   cfg.InitialDifficulty,
		TargetBlockTime:     time.Duration(cfg.TargetBlockSeconds) * time.Second,
		MineAttemptLimit:    cfg.MineAttemptLimit,
		GenesisAttemptLimit: cfg.GenesisAttemptLimit,
	})
	if err != nil {
		return err
	}

	ledgerChain.QueueTransaction("alice", "bob", 10.0)
	ledgerChain.QueueTransaction("bob", "carol", 5.0)

	for i := 1; i <= c.Int("blocks"); i++ {
		payload := fmt.Sprintf("payload-%d", i)
		result, err := ledgerChain.MineBlock(ctx, payload)
		if err != nil {
			logrus.WithError(err).Error("mining round failed")
			break
		}
		logrus.WithFields(logrus.Fields{
			"payload":  payload,
			"attempts": result.Attempts,
			"elapsed":  result.Elapsed,
		}).Info("mining round finished")
	}

	printSummary(ledgerChain)
	if !ledgerChain.IsValid() {
		return fmt.Errorf("chain failed validation")
	}
	return nil
}

func showBanner() {
	fmt.Println("==============================================")
	fmt.Println("=              evochain v1.0                 =")
	fmt.Println("=  hash x puzzle x evolution block acceptance =")
	fmt.Println("==============================================")
}

func printSummary(c *chain.Chain) {
	s := c.Summary()
	fmt.Printf("\nNODE %s\n", s.NodeID)
	fmt.Printf("Difficulty: %d\n", s.Difficulty)
	fmt.Printf("Chain length: %d\n", s.Length)
	for i, b := range s.Blocks {
		fmt.Printf("\nBLOCK %d\n", i)
		fmt.Printf("ID: %s\n", b.ID)
		fmt.Printf("Timestamp: %d\n", b.Timestamp)
		fmt.Printf("Hash: %s...\n", b.HashPrefix)
		fmt.Printf("Previous hash: %s...\n", b.PrevHashPrefix)
		fmt.Printf("Fitness: %f\n", b.Fitness)
		fmt.Printf("Fractal dimension: %f\n", b.FractalDimension)
		fmt.Printf("Transactions: %d\n", b.TxCount)
	}
	fmt.Printf("\nValid: %t\n", c.IsValid())
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
