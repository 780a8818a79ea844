package services

import (
	"context"
	"net"
)

type Service interface {
	Init() error
	// Handle serves one request. A returned error means the connection has
	// been closed.
	Handle(context.Context, net.Conn) error
	Stop() error
}
