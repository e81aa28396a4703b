// SPDX-License-Identifier: EPL-2.0

package onnx

import (
	"fmt"

	"github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"
)

type config struct {
	intraOp int
	interOp int
	log     logrus.FieldLogger
}

// Option configures a Denoiser or Classifier session.
type Option func(*config)

// WithThreads sets the intra-op and inter-op thread counts of the session.
// Values below one are ignored.
func WithThreads(intraOp, interOp int) Option {
	return func(c *config) {
		if intraOp > 0 {
			c.intraOp = intraOp
		}
		if interOp > 0 {
			c.interOp = interOp
		}
	}
}

// WithLogger sets the logger used for session lifecycle records.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.log = l
	}
}

func newConfig(opts []Option) config {
	c := config{intraOp: 1, interOp: 1, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

func (c config) sessionOptions() (*ort.SessionOptions, error) {
	so, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: session options: %w", err)
	}

	if err := so.SetIntraOpNumThreads(c.intraOp); err != nil {
		so.Destroy()
		return nil, fmt.Errorf("onnx: intra-op threads: %w", err)
	}
	if err := so.SetInterOpNumThreads(c.interOp); err != nil {
		so.Destroy()
		return nil, fmt.Errorf("onnx: inter-op threads: %w", err)
	}

	return so, nil
}
