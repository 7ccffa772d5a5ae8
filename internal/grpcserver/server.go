// Package grpcserver implements the JobBoard gRPC server.
//
// It delegates to the search collaborator and the session store and handles
// only the gRPC transport concerns: metadata extraction, error mapping, and
// conversion between the domain model and structpb messages.
package grpcserver

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"jobmate/careers-service/internal/config"
	"jobmate/careers-service/internal/model"
	"jobmate/careers-service/internal/search"
)

// AppliedLister returns the job ids a session applied to.
type AppliedLister interface {
	List(ctx context.Context, sessionID string) ([]int64, error)
}

// Server implements JobBoardServer.
type Server struct {
	searcher search.Searcher
	applied  AppliedLister
	settings *config.Settings
}

// NewServer constructs a Server.
func NewServer(s search.Searcher, applied AppliedLister, settings *config.Settings) *Server {
	return &Server{searcher: s, applied: applied, settings: settings}
}

// ─── RPC implementations ──────────────────────────────────────────────────────

// ListJobs returns one page of jobs. Callers page themselves by passing
// start; moreAvailable follows the same full-page rule as the job list.
// When the call carries x-session-id, jobs the session applied to are
// flagged.
func (s *Server) ListJobs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	filter := fields["filter"].GetStringValue()
	start := fields["start"].GetNumberValue()
	if start < 0 || start != math.Trunc(start) || start > math.MaxInt32 {
		return nil, status.Error(codes.InvalidArgument, "start must be a non-negative integer")
	}

	page, err := s.searcher.GetJobs(ctx, filter, int(start))
	if err != nil {
		return nil, toGRPCError(err)
	}

	var applied []int64
	if sid, err := sessionIDFromCtx(ctx); err == nil {
		if applied, err = s.applied.List(ctx, sid); err != nil {
			return nil, toGRPCError(err)
		}
	}

	return toStruct(map[string]any{
		"data":          model.NewJobViews(page.Data, s.settings.Service.JobInfoChips, applied),
		"total":         page.Total,
		"count":         page.Count,
		"start":         int(start),
		"moreAvailable": page.Count == search.PageSize,
	})
}

// AppliedJobs returns the ids of the jobs the calling session applied to.
func (s *Server) AppliedJobs(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	sid, err := sessionIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := s.applied.List(ctx, sid)
	if err != nil {
		return nil, toGRPCError(err)
	}
	values := make([]*structpb.Value, len(ids))
	for i, id := range ids {
		values[i] = structpb.NewNumberValue(float64(id))
	}
	return &structpb.ListValue{Values: values}, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// sessionIDFromCtx extracts the x-session-id value forwarded by the site
// via gRPC metadata.
func sessionIDFromCtx(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing metadata")
	}
	vals := md.Get("x-session-id")
	if len(vals) == 0 || vals[0] == "" {
		return "", status.Error(codes.Unauthenticated, "missing x-session-id metadata")
	}
	return vals[0], nil
}

// toGRPCError maps domain errors to gRPC status errors.
func toGRPCError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, "internal server error")
}

// toStruct goes through JSON so the wire shape matches the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(data); err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}
