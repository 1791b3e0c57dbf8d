package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName — полное имя gRPC-сервиса.
const ServiceName = "commentrouter.v1.CommentRouter"

const (
	MethodResolvePermalink = "/" + ServiceName + "/ResolvePermalink"
	MethodAuthorizeReply   = "/" + ServiceName + "/AuthorizeReply"
	MethodNewCommentsLinks = "/" + ServiceName + "/NewCommentsLinks"
)

// CommentRouterServer — контракт commentrouter.v1.CommentRouter.
// Запросы и ответы — google.protobuf.Struct.
type CommentRouterServer interface {
	ResolvePermalink(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	AuthorizeReply(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	NewCommentsLinks(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCommentRouterServer регистрирует реализацию на gRPC-сервере.
func RegisterCommentRouterServer(s grpc.ServiceRegistrar, srv CommentRouterServer) {
	s.RegisterService(&CommentRouterServiceDesc, srv)
}

// unaryHandler строит grpc.MethodHandler для метода с сигнатурой Struct -> Struct.
func unaryHandler(fullMethod string, call func(CommentRouterServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(CommentRouterServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CommentRouterServer), ctx, req.(*structpb.Struct))
		}

		return interceptor(ctx, in, info, handler)
	}
}

// CommentRouterServiceDesc — описание сервиса для grpc.Server.
var CommentRouterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CommentRouterServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ResolvePermalink",
			Handler: unaryHandler(MethodResolvePermalink, func(s CommentRouterServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.ResolvePermalink(ctx, in)
			}),
		},
		{
			MethodName: "AuthorizeReply",
			Handler: unaryHandler(MethodAuthorizeReply, func(s CommentRouterServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.AuthorizeReply(ctx, in)
			}),
		},
		{
			MethodName: "NewCommentsLinks",
			Handler: unaryHandler(MethodNewCommentsLinks, func(s CommentRouterServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.NewCommentsLinks(ctx, in)
			}),
		},
	},
	// Metadata не задан: .proto-файла нет, сообщения — только google.protobuf.Struct.
	Streams: []grpc.StreamDesc{},
}
