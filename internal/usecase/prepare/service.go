// Package prepare runs request builders by operation name and records the outcome.
package prepare

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"

	"github.com/kailas-cloud/vecprep"
	"github.com/kailas-cloud/vecprep/internal/domain"
	"github.com/kailas-cloud/vecprep/internal/logger"
	"github.com/kailas-cloud/vecprep/internal/metrics"
)

// Service builds wire requests from loosely-typed arguments.
type Service struct {
	conv Converter
}

// New creates a Service. conv can be nil when no backend form is needed.
func New(conv Converter) *Service {
	return &Service{conv: conv}
}

// Build runs the builder for op and returns the wire request.
func (s *Service) Build(ctx context.Context, op Op, args Args) (any, error) {
	req, err := build(op, args)
	observe(ctx, op, args, err)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	return req, nil
}

// BuildQdrant builds the wire request for op and converts it to its Qdrant form.
func (s *Service) BuildQdrant(ctx context.Context, op Op, args Args) (proto.Message, error) {
	if s.conv == nil {
		return nil, fmt.Errorf("%w: no qdrant converter configured", domain.ErrUnsupported)
	}
	req, err := s.Build(ctx, op, args)
	if err != nil {
		return nil, err
	}
	msg, err := s.conv.Convert(req)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", op, err)
	}
	return msg, nil
}

// HealthCheck builds a probe request to confirm the builders are usable.
func (s *Service) HealthCheck(_ context.Context) error {
	if _, err := vecprep.TableName("health_probe"); err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	return nil
}

func build(op Op, a Args) (any, error) {
	switch op {
	case OpTableName:
		return vecprep.TableName(a.TableName)
	case OpTableSchema:
		return vecprep.TableSchema(a.Param)
	case OpRange:
		return vecprep.DateRange(a.Start, a.End)
	case OpRanges:
		ranges, err := normalizeRanges(a.Ranges)
		if err != nil {
			return nil, err
		}
		return vecprep.DateRanges(ranges)
	case OpInsert:
		return vecprep.InsertParam(a.TableName, a.Vectors, a.IDs)
	case OpIndex:
		t, err := indexType(a.IndexType)
		if err != nil {
			return nil, err
		}
		return vecprep.Index(t, a.NList)
	case OpIndexParam:
		return vecprep.IndexParam(a.TableName, a.IndexParam)
	case OpSearch:
		ranges, err := normalizeRanges(a.Ranges)
		if err != nil {
			return nil, err
		}
		return vecprep.SearchParam(a.TableName, a.Vectors, ranges, a.TopK, a.NProbe)
	case OpSearchInFiles:
		ranges, err := normalizeRanges(a.Ranges)
		if err != nil {
			return nil, err
		}
		return vecprep.SearchInFilesParam(a.TableName, a.Vectors, ranges, a.TopK, a.NProbe, a.FileIDs)
	case OpCmd:
		return vecprep.Cmd(a.Cmd)
	case OpDeleteByRange:
		return vecprep.DeleteByRangeParam(a.TableName, a.Start, a.End)
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", domain.ErrUnsupported, op)
	}
}

func observe(ctx context.Context, op Op, a Args, err error) {
	status := Status(err)
	metrics.PrepareRequestsTotal.WithLabelValues(string(op), status).Inc()

	log := logger.FromContext(ctx)
	if err != nil {
		log.Debug("Request rejected",
			zap.String("operation", string(op)),
			zap.String("status", status),
			zap.Error(err),
		)
		return
	}

	if n := len(a.Vectors); n > 0 && (op == OpInsert || op == OpSearch || op == OpSearchInFiles) {
		metrics.PrepareVectorsTotal.WithLabelValues(string(op)).Add(float64(n))
	}
	log.Debug("Request built",
		zap.String("operation", string(op)),
		zap.String("table", a.TableName),
		zap.Int("vectors", len(a.Vectors)),
	)
}

// Status classifies an error into a metrics outcome label.
func Status(err error) string {
	switch {
	case err == nil:
		return metrics.StatusOK
	case errors.Is(err, domain.ErrTypeMismatch):
		return metrics.StatusTypeMismatch
	case errors.Is(err, domain.ErrInvalidParameter):
		return metrics.StatusInvalidParameter
	case errors.Is(err, domain.ErrUnsupported):
		return metrics.StatusUnsupported
	default:
		return metrics.StatusError
	}
}
