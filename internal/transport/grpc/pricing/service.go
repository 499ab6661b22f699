// Package pricing exposes the pricing use cases as the pricing.v1.PricingService gRPC service.
//
// Messages are google.protobuf.Struct values whose fields mirror the JSON API,
// so the service needs no generated code and any gRPC client can call it.
package pricing

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "pricing.v1.PricingService"

// Method names.
const (
	MethodSetBasePrice            = "SetBasePrice"
	MethodScheduleBasePrice       = "ScheduleBasePrice"
	MethodSetBulkTiers            = "SetBulkTiers"
	MethodAddPromotion            = "AddPromotion"
	MethodRemovePromotion         = "RemovePromotion"
	MethodGetPriceEntry           = "GetPriceEntry"
	MethodListPriceEntries        = "ListPriceEntries"
	MethodCalculatePrice          = "CalculatePrice"
	MethodCalculateSavingsSummary = "CalculateSavingsSummary"
	MethodSetAvailability         = "SetAvailability"
	MethodListEvents              = "ListEvents"
)

// PricingServiceServer is the server API for pricing.v1.PricingService.
type PricingServiceServer interface {
	SetBasePrice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ScheduleBasePrice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetBulkTiers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddPromotion(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemovePromotion(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPriceEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPriceEntries(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CalculatePrice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CalculateSavingsSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetAvailability(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEvents(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(PricingServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PricingServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PricingServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes pricing.v1.PricingService for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodSetBasePrice, PricingServiceServer.SetBasePrice),
		unaryMethod(MethodScheduleBasePrice, PricingServiceServer.ScheduleBasePrice),
		unaryMethod(MethodSetBulkTiers, PricingServiceServer.SetBulkTiers),
		unaryMethod(MethodAddPromotion, PricingServiceServer.AddPromotion),
		unaryMethod(MethodRemovePromotion, PricingServiceServer.RemovePromotion),
		unaryMethod(MethodGetPriceEntry, PricingServiceServer.GetPriceEntry),
		unaryMethod(MethodListPriceEntries, PricingServiceServer.ListPriceEntries),
		unaryMethod(MethodCalculatePrice, PricingServiceServer.CalculatePrice),
		unaryMethod(MethodCalculateSavingsSummary, PricingServiceServer.CalculateSavingsSummary),
		unaryMethod(MethodSetAvailability, PricingServiceServer.SetAvailability),
		unaryMethod(MethodListEvents, PricingServiceServer.ListEvents),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricing/v1/pricing.proto",
}

// RegisterPricingServiceServer registers srv on s.
func RegisterPricingServiceServer(s grpc.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls pricing.v1.PricingService methods by name.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a new pricing service client.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with in and returns the reply message.
func (c *Client) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
