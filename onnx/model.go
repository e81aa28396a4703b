// SPDX-License-Identifier: EPL-2.0

package onnx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"
)

// signature names the tensors of a model that maps a mono signal and a
// scalar noise level to a float32 vector.
type signature struct {
	signal string
	level  string
	output string
	outLen int
}

// model owns an AdvancedSession and the tensors bound to it. Runs are
// serialized because the bound tensors are shared.
type model struct {
	mu      sync.Mutex
	path    string
	session *ort.AdvancedSession
	signal  *ort.Tensor[float32]
	level   *ort.Tensor[float64]
	output  *ort.Tensor[float32]
	log     logrus.FieldLogger
}

func openModel(path string, sig signature, inLen int, c config) (*model, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("onnx: stat model: %w", err)
	}
	if !Initialized() {
		return nil, ErrNotInitialized
	}

	m := &model{
		path: path,
		log:  c.log.WithField("model", path),
	}

	var err error
	if m.signal, err = ort.NewEmptyTensor[float32](ort.NewShape(1, int64(inLen))); err != nil {
		return nil, fmt.Errorf("onnx: %s tensor: %w", sig.signal, err)
	}
	if m.level, err = ort.NewTensor(ort.NewShape(1), []float64{0}); err != nil {
		m.close()
		return nil, fmt.Errorf("onnx: %s tensor: %w", sig.level, err)
	}
	if m.output, err = ort.NewEmptyTensor[float32](ort.NewShape(1, int64(sig.outLen))); err != nil {
		m.close()
		return nil, fmt.Errorf("onnx: %s tensor: %w", sig.output, err)
	}

	so, err := c.sessionOptions()
	if err != nil {
		m.close()
		return nil, err
	}
	defer so.Destroy()

	m.session, err = ort.NewAdvancedSession(
		path,
		[]string{sig.signal, sig.level},
		[]string{sig.output},
		[]ort.Value{m.signal, m.level},
		[]ort.Value{m.output},
		so)
	if err != nil {
		m.close()
		return nil, fmt.Errorf("onnx: create session for %s: %w", path, err)
	}

	m.log.WithFields(logrus.Fields{
		"inputs":  []string{sig.signal, sig.level},
		"output":  sig.output,
		"intraOp": c.intraOp,
		"interOp": c.interOp,
	}).Debug("session created")

	return m, nil
}

// run copies signal into the input tensor, runs the session and returns the
// output tensor's backing slice, valid until the next run.
func (m *model) run(ctx context.Context, signal []float32, level float64) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, ErrClosed
	}

	in := m.signal.GetData()
	if len(signal) != len(in) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInputSize, len(signal), len(in))
	}
	copy(in, signal)
	m.level.GetData()[0] = level

	if err := m.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx: run %s: %w", m.path, err)
	}

	return m.output.GetData(), nil
}

func (m *model) close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	if m.session != nil {
		errs = append(errs, m.session.Destroy())
		m.session = nil
	}
	if m.signal != nil {
		errs = append(errs, m.signal.Destroy())
		m.signal = nil
	}
	if m.level != nil {
		errs = append(errs, m.level.Destroy())
		m.level = nil
	}
	if m.output != nil {
		errs = append(errs, m.output.Destroy())
		m.output = nil
	}

	return errors.Join(errs...)
}
