package app

import (
	"context"
	"encoding/json"

	"github.com/awmpietro/golang-algorithm-visualizer/internal/registry"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/stepfilter"
)

type Catalog interface {
	List() []registry.Metadata
	Get(id string) (registry.Metadata, bool)
	Resolve(id string, input json.RawMessage) (step.Sequence, error)
	Source(id string) (string, error)
}

type FilterCache interface {
	GetOrCompute(key string, fn func() (*stepfilter.Filter, error)) (*stepfilter.Filter, error)
}

// AlgorithmService is what the transports need from Service.
type AlgorithmService interface {
	List() []registry.Metadata
	Get(id string) (registry.Metadata, error)
	Source(id string) (string, error)
	Execute(ctx context.Context, id string, input json.RawMessage, opts ExecuteOptions) (*Execution, error)
	Stream(ctx context.Context, id string, input json.RawMessage, opts ExecuteOptions, emit func(step.Step) error) (*StreamResult, error)
}
