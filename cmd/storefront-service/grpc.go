package main

import (
	"context"
	"log"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const healthService = "storefront.v1.Storefront"

// serveHealth exposes the standard gRPC health service. Status follows the
// database ping.
func serveHealth(ctx context.Context, addr string, ping func(context.Context) error) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	go watchHealth(ctx, hs, ping, 10*time.Second)
	go func() {
		log.Printf("[grpc] health listening on %s", addr)
		if err := srv.Serve(lis); err != nil {
			log.Printf("[grpc] serve: %v", err)
		}
	}()
	return srv, nil
}

func watchHealth(ctx context.Context, hs *health.Server, ping func(context.Context) error, every time.Duration) {
	set := func() {
		status := healthpb.HealthCheckResponse_SERVING
		if err := ping(ctx); err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus("", status)
		hs.SetServingStatus(healthService, status)
	}
	set()
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-t.C:
			set()
		}
	}
}
