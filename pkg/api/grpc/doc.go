// Package grpc exposes the standard grpc.health.v1 service so that gRPC
// aware load balancers and orchestrators can probe the application.
package grpc
