package main

import "os"

import "github.com/alexflint/go-arg"
import "go.uber.org/zap"

import "github.com/avgm/reviewscore/config"

type args struct {
	Config    string `arg:"--config" help:"YAML configuration file"`
	Data      string `arg:"--data" help:"review table, overrides the config"`
	Format    string `arg:"--format" help:"csv or sqlite"`
	Device    string `arg:"--device" help:"cpu, cuda or cuda:N"`
	Epochs    int    `arg:"--epochs" help:"number of epochs"`
	BatchSize int    `arg:"--batch-size" help:"examples per batch"`
	Seed      *int64 `arg:"--seed" help:"shuffle and initialization seed"`
	Bar       bool   `arg:"--bar" help:"draw a progress bar"`
}

func (a args) apply(c *config.Config) {
	if a.Data != "" {
		c.Data = a.Data
	}
	if a.Format != "" {
		c.Format = a.Format
	}
	if a.Device != "" {
		c.Device = a.Device
	}
	if a.Epochs > 0 {
		c.Epochs = a.Epochs
	}
	if a.BatchSize > 0 {
		c.BatchSize = a.BatchSize
	}
	if a.Seed != nil {
		c.Seed = *a.Seed
	}
	if a.Bar {
		c.ProgressBar = true
	}
}

func main() {
	var a args
	arg.MustParse(&a)

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err.Error())
	}
	defer logger.Sync()

	var c = config.Default()
	if a.Config != "" {
		c, err = config.Load(a.Config)
		if err != nil {
			logger.Fatal("loading config", zap.Error(err))
		}
	}
	a.apply(&c)
	if err := c.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	t, err := train(c, logger)
	if err != nil {
		logger.Error("training failed", zap.Error(err))
		os.Exit(1)
	}
	if err := report(t, logger); err != nil {
		logger.Error("summary failed", zap.Error(err))
		os.Exit(1)
	}
}
