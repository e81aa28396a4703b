// SPDX-License-Identifier: EPL-2.0

/*
Package onnx runs the drum models through ONNX Runtime.

It provides a Denoiser and a Classifier that satisfy the interfaces of the
diffusion package. Both keep their input and output tensors allocated for
the lifetime of the session, so a generation performs no tensor
allocations.

The runtime is a shared library loaded at run time:

	if err := onnx.Init("/usr/lib/libonnxruntime.so"); err != nil {
		return err
	}
	defer onnx.Shutdown()

	den, err := onnx.NewDenoiser("models/unet.onnx")
	if err != nil {
		return err
	}
	defer den.Close()

	eng, err := diffusion.NewEngine(den)

Model signatures:

	denoiser:   input [1, 21000] float32, sigma [1] float64 -> output [1, 21000] float32
	classifier: audio [1, 21000] float32, noise_scale [1] float64 -> output [1, 3] float32

Sessions use one intra-op and one inter-op thread unless WithThreads says
otherwise.
*/
package onnx
