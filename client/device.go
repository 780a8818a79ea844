package client

import (
	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/YLonely/dosdev-manager/api/services/device"
	"github.com/YLonely/dosdev-manager/api/types"
)

// ReadMapping reads the target of a named mapping. A capacity of zero means
// no limit.
func (client *Client) ReadMapping(name string, capacity int) (string, error) {
	rsp := device.ReadResponse{}
	if err := client.call(dosdevmgr.DeviceService, device.MethodRead, device.ReadRequest{
		Name:     name,
		Capacity: capacity,
	}, &rsp); err != nil {
		return "", err
	}
	return rsp.Target, rsp.Error.Err()
}

// WriteMapping points name at target, an empty target removes it
func (client *Client) WriteMapping(name, target string) error {
	rsp := device.WriteResponse{}
	if err := client.call(dosdevmgr.DeviceService, device.MethodWrite, device.WriteRequest{
		Name:   name,
		Target: target,
	}, &rsp); err != nil {
		return err
	}
	return rsp.Error.Err()
}

func (client *Client) ScanPorts(kind string) ([]types.Port, error) {
	return client.ports(device.MethodScanPorts, kind)
}

func (client *Client) InstallPorts(kind string) ([]types.Port, error) {
	return client.ports(device.MethodInstallPorts, kind)
}

func (client *Client) ports(method, kind string) ([]types.Port, error) {
	rsp := device.PortsResponse{}
	if err := client.call(dosdevmgr.DeviceService, method, device.PortsRequest{Kind: kind}, &rsp); err != nil {
		return nil, err
	}
	return rsp.Ports, rsp.Error.Err()
}
