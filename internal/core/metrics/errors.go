package metrics

import "errors"

// ErrNilRegisterer 未提供 Prometheus Registerer
var ErrNilRegisterer = errors.New("metrics: nil prometheus registerer")
