// Package pb holds the Go bindings for the gateway's protobuf services.
//
// The message types in syncpb and exchangespb mirror proto/sync.proto and
// proto/exchanges.proto field for field. They are plain structs carrying
// protobuf struct tags (the APIv1 message shape), which protobuf-go and
// grpc-go marshal through protoadapt, so the wire format is identical to the
// protoc output used by the exchange clients.
//
// Keep the tags in sync with the .proto files when a field is added;
// TestBindingsMatchProto fails when they drift. Running go generate in this
// directory writes protoc-gen-go output into syncpb and exchangespb instead,
// after which the hand-written sync.go and exchanges.go files are removed.
package pb

//go:generate protoc --proto_path=../../proto --go_out=. --go_opt=module=github.com/rickgao/trade-aggregator/internal/pb --go-grpc_out=. --go-grpc_opt=module=github.com/rickgao/trade-aggregator/internal/pb sync.proto exchanges.proto
