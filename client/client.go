package client

import (
	"context"
	"net"
	"sync"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/YLonely/dosdev-manager/config"
	"github.com/YLonely/dosdev-manager/utils"
)

func NewDaemonClient(config Config) (*Client, error) {
	var c net.Conn
	var err error
	if c, err = net.Dial("unix", config.SocketPath); err != nil {
		return nil, err
	}
	return New(c), nil
}

func Default() (*Client, error) {
	return NewDaemonClient(Config{
		SocketPath: config.DefaultSocketPath,
	})
}

// New wraps an established connection to the daemon
func New(c net.Conn) *Client {
	return &Client{
		c: c,
	}
}

type Config struct {
	SocketPath string
}

// Client issues requests one at a time over a single connection
type Client struct {
	mu sync.Mutex
	c  net.Conn
}

func (client *Client) Close(context.Context) error {
	return client.c.Close()
}

func (client *Client) call(t dosdevmgr.ServiceType, method string, req, rsp interface{}) error {
	data, err := utils.Pack(t, method, req)
	if err != nil {
		return err
	}
	client.mu.Lock()
	defer client.mu.Unlock()
	if err = utils.SendRaw(client.c, data); err != nil {
		return err
	}
	return utils.ReceiveObject(client.c, rsp)
}
