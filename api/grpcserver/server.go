package grpcserver

import (
	"context"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "sequencer/api/sequencerpb"
	"sequencer/domain/preblock"
	"sequencer/infra/metrics"
	"sequencer/ledger"
	"sequencer/service"
)

const (
	// MaxRangeCount caps GetPreBlocksRange; a request for 0 gets the cap.
	MaxRangeCount = 1024

	// SinkCapacity buffers pre-blocks between a live query and its stream.
	SinkCapacity = 128
)

// Server adapts a service.Client to gRPC.
type Server struct {
	pb.UnimplementedSequencerServer
	client  *service.Client
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewServer(client *service.Client, log *zap.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{client: client, log: log, metrics: m}
}

// New builds a grpc.Server with the sequencer service registered.
func New(client *service.Client, log *zap.Logger, m *metrics.Metrics, opts ...grpc.ServerOption) *grpc.Server {
	srv := NewServer(client, log, m)
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(srv.logUnary),
	}, opts...)

	g := grpc.NewServer(opts...)
	pb.RegisterSequencerServer(g, srv)
	return g
}

// -------------------- Queries --------------------

func (s *Server) GetHead(ctx context.Context, _ *pb.Empty) (*pb.PreBlockHeader, error) {
	h, err := s.client.GetHead(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return pb.FromHeader(h), nil
}

func (s *Server) GetPreBlocksRange(ctx context.Context, req *pb.RangeRequest) (*pb.PreBlockList, error) {
	count := int(req.GetMaxCount())
	if count == 0 || count > MaxRangeCount {
		count = MaxRangeCount
	}

	blocks, err := s.client.GetPreBlocks(ctx, req.GetFromId(), count)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return pb.FromPreBlocks(blocks), nil
}

// -------------------- Commands --------------------

func (s *Server) SubmitTransaction(ctx context.Context, req *pb.Transaction) (*pb.Empty, error) {
	if err := s.client.SubmitTransaction(ctx, preblock.Transaction(req.GetData())); err != nil {
		return nil, s.toStatus(err)
	}
	return &pb.Empty{}, nil
}

// SubmitTransactionStream submits every received transaction in order. The
// call ends with Unavailable as soon as the runner stops, even while the
// client is idle.
func (s *Server) SubmitTransactionStream(stream grpc.ClientStreamingServer[pb.Transaction, pb.Empty]) error {
	ctx := stream.Context()
	reqs := make(chan *pb.Transaction)
	recvErr := make(chan error, 1)
	go func() {
		for {
			req, err := stream.Recv()
			if err != nil {
				recvErr <- err
				return
			}
			select {
			case reqs <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	n := 0
	for {
		select {
		case req := <-reqs:
			if err := s.client.SubmitTransaction(ctx, preblock.Transaction(req.GetData())); err != nil {
				return s.toStatus(err)
			}
			n++
		case err := <-recvErr:
			if err == io.EOF {
				s.log.Debug("transaction stream closed", zap.Int("txs", n))
				return stream.SendAndClose(&pb.Empty{})
			}
			return err
		case <-s.client.Done():
			s.log.Debug("transaction stream ended by shutdown", zap.Int("txs", n))
			return s.toStatus(service.ErrShutdownInProgress)
		}
	}
}

// -------------------- Streams --------------------

func (s *Server) LiveQueryPreBlocks(req *pb.LiveQueryRequest, stream grpc.ServerStreamingServer[pb.PreBlock]) error {
	ctx, cancel := context.WithCancel(stream.Context())
	sink := make(chan service.Result, SinkCapacity)
	q := service.NewLiveQuery(req.GetFromId(), s.client.Clone(), sink, s.log.Named("live_query"), s.metrics)
	go q.Run(ctx)

	// Wait for the query to wind down before the handler returns
	defer func() {
		cancel()
		for range sink {
		}
	}()

	for r := range sink {
		if r.Err != nil {
			return s.toStatus(r.Err)
		}
		if err := stream.Send(pb.FromPreBlock(r.PreBlock)); err != nil {
			return err
		}
	}
	return status.FromContextError(ctx.Err()).Err()
}

// -------------------- Errors --------------------

// toStatus maps service errors to gRPC codes. Anything unexpected is logged
// and reported without detail.
func (s *Server) toStatus(err error) error {
	switch {
	case errors.Is(err, ledger.ErrCorrupt):
		// Internal, even when it also reads as not found
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrPreBlockNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrShutdownInProgress):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, service.ErrNonSequential):
		return status.Error(codes.DataLoss, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	}

	s.log.Error("request failed", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

func (s *Server) logUnary(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.log.Debug("rpc",
		zap.String("method", info.FullMethod),
		zap.Stringer("code", status.Code(err)),
		zap.Duration("took", time.Since(start)),
	)
	return resp, err
}
