// PlanAdvisor - Mobile and Broadband Plan Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/planadvisor

package predictor

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ortEnv manages process-wide ONNX Runtime initialization.
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Only the first call has any effect.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// ONNXConfig locates an ONNX classifier export (skl2onnx / onnxmltools).
type ONNXConfig struct {
	ModelPath  string
	RuntimeLib string // path to libonnxruntime
	Threads    int    // intra-op threads, 0 = runtime default
}

// ONNXClassifier runs the mobile plan classifier through ONNX Runtime.
// The model takes a float tensor [1, n] and emits an int64 "label" tensor.
type ONNXClassifier struct {
	mu          sync.Mutex // serializes Run on the shared session
	session     *ort.DynamicAdvancedSession
	numFeatures int64
	labels      *LabelEncoder
}

// LoadONNX opens an inference session for cfg.ModelPath and decodes labels with labelsPath.
func LoadONNX(cfg ONNXConfig, labelsPath string) (*ONNXClassifier, error) {
	labels, err := LoadLabelEncoder(labelsPath)
	if err != nil {
		return nil, err
	}

	if err := initORT(cfg.RuntimeLib); err != nil {
		return nil, fmt.Errorf("%w: onnx runtime init: %w", ErrArtifact, err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: onnx model info: %w", ErrArtifact, err)
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("%w: onnx classifier must have one input, has %d", ErrArtifact, len(inputs))
	}
	dims := inputs[0].Dimensions
	if len(dims) != 2 || dims[1] <= 0 {
		return nil, fmt.Errorf("%w: onnx input must be [batch, features], got %v", ErrArtifact, dims)
	}

	labelOutput, err := findLabelOutput(outputs)
	if err != nil {
		return nil, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("%w: onnx session options: %w", ErrArtifact, err)
	}
	defer func() { _ = opts.Destroy() }()
	if cfg.Threads > 0 {
		if err := opts.SetIntraOpNumThreads(cfg.Threads); err != nil {
			return nil, fmt.Errorf("%w: onnx threads: %w", ErrArtifact, err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{inputs[0].Name}, []string{labelOutput}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: onnx session: %w", ErrArtifact, err)
	}

	return &ONNXClassifier{
		session:     session,
		numFeatures: dims[1],
		labels:      labels,
	}, nil
}

// findLabelOutput prefers an output named "label", falling back to the first output.
func findLabelOutput(outputs []ort.InputOutputInfo) (string, error) {
	if len(outputs) == 0 {
		return "", fmt.Errorf("%w: onnx model has no outputs", ErrArtifact)
	}
	for _, o := range outputs {
		if o.Name == "label" {
			return o.Name, nil
		}
	}
	return outputs[0].Name, nil
}

// Name identifies the backend.
func (c *ONNXClassifier) Name() string { return "onnx" }

// Predict runs a single-row inference.
func (c *ONNXClassifier) Predict(ctx context.Context, features []float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if int64(len(features)) != c.numFeatures {
		return "", fmt.Errorf("%w: model expects %d features, got %d", ErrPredict, c.numFeatures, len(features))
	}

	data := make([]float32, len(features))
	for i, f := range features {
		data[i] = float32(f)
	}
	input, err := ort.NewTensor(ort.NewShape(1, c.numFeatures), data)
	if err != nil {
		return "", fmt.Errorf("%w: input tensor: %w", ErrPredict, err)
	}
	defer func() { _ = input.Destroy() }()

	output, err := ort.NewEmptyTensor[int64](ort.NewShape(1))
	if err != nil {
		return "", fmt.Errorf("%w: output tensor: %w", ErrPredict, err)
	}
	defer func() { _ = output.Destroy() }()

	c.mu.Lock()
	err = c.session.Run([]ort.Value{input}, []ort.Value{output})
	c.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("%w: onnx inference: %w", ErrPredict, err)
	}

	return c.labels.Decode(int(output.GetData()[0]))
}

// Close releases the session.
func (c *ONNXClassifier) Close() error {
	return c.session.Destroy()
}
