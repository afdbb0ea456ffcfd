package grpc

import (
	"context"

	"github.com/JMURv/session-guard/internal/dto"
	"google.golang.org/grpc"
)

const ServiceName = "sessionguard.v1.Sessions"

type Empty struct{}

type SessionsServer interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) (*Empty, error)
	Me(ctx context.Context, req *Empty) (*dto.Principal, error)
	ListSessions(ctx context.Context, req *Empty) (*dto.ListSessionsResponse, error)
}

// ProtectedMethods need a valid access token or a live refresh token.
var ProtectedMethods = []string{
	"/" + ServiceName + "/Me",
	"/" + ServiceName + "/ListSessions",
}

var sessionsDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SessionsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Login",
			Handler: unary(
				"Login", func(s SessionsServer, ctx context.Context, req *dto.LoginRequest) (any, error) {
					return s.Login(ctx, req)
				},
			),
		},
		{
			MethodName: "Refresh",
			Handler: unary(
				"Refresh", func(s SessionsServer, ctx context.Context, req *dto.RefreshRequest) (any, error) {
					return s.Refresh(ctx, req)
				},
			),
		},
		{
			MethodName: "Logout",
			Handler: unary(
				"Logout", func(s SessionsServer, ctx context.Context, req *dto.LogoutRequest) (any, error) {
					return s.Logout(ctx, req)
				},
			),
		},
		{
			MethodName: "Me",
			Handler: unary(
				"Me", func(s SessionsServer, ctx context.Context, req *Empty) (any, error) {
					return s.Me(ctx, req)
				},
			),
		},
		{
			MethodName: "ListSessions",
			Handler: unary(
				"ListSessions", func(s SessionsServer, ctx context.Context, req *Empty) (any, error) {
					return s.ListSessions(ctx, req)
				},
			),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sessionguard/v1/sessions",
}

func unary[Req any](
	method string,
	call func(SessionsServer, context.Context, *Req) (any, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		s := srv.(SessionsServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		return interceptor(
			ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			},
		)
	}
}
