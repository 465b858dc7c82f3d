// Package config holds the training configuration and its YAML form.
package config

import "io/ioutil"

import "github.com/pkg/errors"
import "gopkg.in/yaml.v2"

// Config is everything needed to train a review scorer
type Config struct {
	Data   string `yaml:"data"`   // path to the review table
	Format string `yaml:"format"` // csv or sqlite
	Table  string `yaml:"table"`  // sqlite table name

	TrainSet string `yaml:"train_set"` // set column value of training rows, empty uses every row outside valid_set
	ValidSet string `yaml:"valid_set"` // set column value of validation rows, empty disables validation

	PaddingIndex int64  `yaml:"padding_index"`
	Device       string `yaml:"device"` // cpu, cuda or cuda:N

	BatchSize int   `yaml:"batch_size"`
	Shuffle   bool  `yaml:"shuffle"`
	Seed      int64 `yaml:"seed"`
	Workers   int   `yaml:"workers"` // batches collated ahead, -1 for one per core

	Epochs     int   `yaml:"epochs"`
	PrintEvery int   `yaml:"print_every"`
	Thresholds []int `yaml:"thresholds"` // one accuracy metric per threshold

	LearningRate float64 `yaml:"learning_rate"`
	Momentum     float64 `yaml:"momentum"`

	VocabSize    int `yaml:"vocab_size"`
	EmbeddingDim int `yaml:"embedding_dim"`
	Classes      int `yaml:"classes"` // user scores run from 0 to 10

	ProgressBar bool `yaml:"progress_bar"`
}

// Default is the configuration used for fields a file leaves out
func Default() Config {
	return Config{
		Format:       "csv",
		Table:        "reviews",
		TrainSet:     "train",
		ValidSet:     "valid",
		PaddingIndex: 1,
		Device:       "cpu",
		BatchSize:    128,
		Shuffle:      true,
		Seed:         1,
		Workers:      -1,
		Epochs:       10,
		PrintEvery:   25,
		Thresholds:   []int{0, 1},
		LearningRate: 0.1,
		Momentum:     0.9,
		VocabSize:    30000,
		EmbeddingDim: 64,
		Classes:      11,
	}
}

// Parse decodes YAML on top of the defaults
func Parse(data []byte) (Config, error) {
	var c = Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, errors.Wrap(err, "decoding config")
	}
	return c, nil
}

// Load reads a YAML file on top of the defaults
func Load(name string) (Config, error) {
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return Default(), err
	}
	c, err := Parse(data)
	if err != nil {
		return c, errors.Wrapf(err, "loading %s", name)
	}
	return c, nil
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	switch {
	case c.Data == "":
		return errors.New("config: data path is empty")
	case c.Format != "csv" && c.Format != "sqlite":
		return errors.Errorf("config: unknown format %q", c.Format)
	case c.Format == "sqlite" && c.Table == "":
		return errors.New("config: sqlite needs a table")
	case c.TrainSet != "" && c.TrainSet == c.ValidSet:
		return errors.Errorf("config: train_set and valid_set are both %q", c.TrainSet)
	case c.Device == "":
		return errors.New("config: device is empty")
	case c.BatchSize <= 0:
		return errors.Errorf("config: batch size %d", c.BatchSize)
	case c.Epochs <= 0:
		return errors.Errorf("config: epochs %d", c.Epochs)
	case c.PrintEvery <= 0:
		return errors.Errorf("config: print_every %d", c.PrintEvery)
	case c.VocabSize <= 0 || c.EmbeddingDim <= 0 || c.Classes <= 0:
		return errors.Errorf("config: model sizes vocab=%d dim=%d classes=%d", c.VocabSize, c.EmbeddingDim, c.Classes)
	case c.LearningRate <= 0:
		return errors.Errorf("config: learning rate %g", c.LearningRate)
	}
	for _, t := range c.Thresholds {
		if t < 0 {
			return errors.Errorf("config: negative accuracy threshold %d", t)
		}
	}
	return nil
}
