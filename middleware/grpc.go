package middleware

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor creates a gRPC unary server interceptor that validates the license.
// It works similarly to the HTTP middleware but adapted for gRPC context.
func (c *LicenseClient) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	c.startupValidation()

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if err := c.checkLicense(); err != nil {
			c.logger.Warnf("Call to %s refused: %v", info.FullMethod, err)

			return nil, status.Error(codes.PermissionDenied, err.Error())
		}

		return handler(ctx, req)
	}
}

// StreamServerInterceptor creates a gRPC stream server interceptor that validates the license
func (c *LicenseClient) StreamServerInterceptor() grpc.StreamServerInterceptor {
	c.startupValidation()

	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if err := c.checkLicense(); err != nil {
			c.logger.Warnf("Stream %s refused: %v", info.FullMethod, err)

			return status.Error(codes.PermissionDenied, err.Error())
		}

		return handler(srv, ss)
	}
}
