package main

import "math/rand"

import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/avgm/reviewscore/config"
import "github.com/avgm/reviewscore/costfuncs"
import "github.com/avgm/reviewscore/datasets"
import "github.com/avgm/reviewscore/device"
import "github.com/avgm/reviewscore/metrics"
import "github.com/avgm/reviewscore/models/bow"
import "github.com/avgm/reviewscore/optimizers"
import "github.com/avgm/reviewscore/trainer"

func load(c config.Config) (*datasets.Table, error) {
	switch c.Format {
	case "sqlite":
		return datasets.LoadSQLite(c.Data, c.Table, c.TrainSet != "" || c.ValidSet != "")
	default:
		return datasets.LoadCSVFile(c.Data)
	}
}

// split separates training and validation rows. A table without set values
// is all training. With an empty TrainSet every row outside the validation
// set is used for training. valid is nil when there is no validation set.
func split(c config.Config, table *datasets.Table) (train, valid *datasets.Table) {
	train = table
	if sets := table.Sets(); len(sets) == 0 || (len(sets) == 1 && sets[0] == "") {
		return
	}
	switch {
	case c.TrainSet != "":
		train = table.Subset(c.TrainSet)
	case c.ValidSet != "":
		train = table.Without(c.ValidSet)
	}
	if c.ValidSet != "" && c.ValidSet != c.TrainSet {
		if v := table.Subset(c.ValidSet); v.Len() > 0 {
			valid = v
		}
	}
	return
}

func train(c config.Config, log *zap.Logger) (*trainer.Trainer, error) {
	dev, err := device.Parse(c.Device)
	if err != nil {
		return nil, err
	}
	log.Info("device", zap.Stringer("device", dev), zap.String("cpu", device.Brand()), zap.Bool("avx512", device.AVX512()))

	table, err := load(c)
	if err != nil {
		return nil, err
	}
	trainTable, validTable := split(c, table)
	if trainTable.Len() == 0 {
		return nil, errors.Errorf("no rows in training set %q of %s", c.TrainSet, c.Data)
	}
	log.Info("table loaded", zap.Int("rows", table.Len()), zap.Int("train", trainTable.Len()), zap.Bool("validation", validTable != nil))

	var workers = c.Workers
	if workers < 0 {
		workers = device.Workers()
	}
	var rng = rand.New(rand.NewSource(c.Seed))

	trainData, err := datasets.NewDataset(trainTable, c.PaddingIndex, dev)
	if err != nil {
		return nil, err
	}
	trainLoader, err := trainData.Loader(c.BatchSize, c.Shuffle, rng, workers)
	if err != nil {
		return nil, err
	}
	var validSource trainer.BatchSource
	if validTable != nil {
		validData, err := datasets.NewDataset(validTable, c.PaddingIndex, dev)
		if err != nil {
			return nil, err
		}
		validLoader, err := validData.Loader(c.BatchSize, false, nil, workers)
		if err != nil {
			return nil, err
		}
		validSource = validLoader
	}

	model, err := bow.New(c.VocabSize, c.EmbeddingDim, c.Classes, c.PaddingIndex, rng)
	if err != nil {
		return nil, err
	}
	var factories []metrics.Factory
	for _, th := range c.Thresholds {
		factories = append(factories, metrics.AccuracyThreshold(th))
	}
	t, err := trainer.New(model, costfuncs.CrossEntropy(), optimizers.NewSGD(model.Params(), c.LearningRate, c.Momentum), trainer.Options{
		Device:      dev,
		Metrics:     factories,
		PrintEvery:  c.PrintEvery,
		Logger:      log,
		ProgressBar: c.ProgressBar,
	})
	if err != nil {
		return nil, err
	}
	if err := t.Fit(trainLoader, validSource, c.Epochs); err != nil {
		return t, err
	}
	return t, nil
}

func report(t *trainer.Trainer, log *zap.Logger) error {
	for _, phase := range []trainer.Phase{trainer.Training, trainer.Evaluating} {
		summary, err := t.Summary(phase)
		if err != nil {
			return err
		}
		for _, s := range summary {
			log.Info("summary",
				zap.Stringer("phase", phase),
				zap.String("metric", s.Name),
				zap.Int("epochs", s.Epochs),
				zap.Float64("last", s.Last),
				zap.Float64("best", s.Best),
				zap.Float64("mean", s.Mean),
			)
		}
	}
	return nil
}
