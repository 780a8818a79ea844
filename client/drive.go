package client

import (
	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/YLonely/dosdev-manager/api/services/drive"
	"github.com/YLonely/dosdev-manager/api/types"
	"github.com/YLonely/dosdev-manager/dosdevices"
)

// Allocate returns the letter mapping device, allocating one of class when
// none does. A non empty mountPoint also sets the drive root.
func (client *Client) Allocate(device, class, mountPoint string) (string, error) {
	rsp := drive.AllocateResponse{}
	err := client.call(dosdevmgr.DriveService, drive.MethodAllocate, drive.AllocateRequest{
		Device:     device,
		Class:      class,
		MountPoint: mountPoint,
	}, &rsp)
	if err != nil {
		return "", err
	}
	return rsp.Letter, rsp.Error.Err()
}

func (client *Client) Release(letter string, purge bool) error {
	rsp := drive.ReleaseResponse{}
	if err := client.call(dosdevmgr.DriveService, drive.MethodRelease, drive.ReleaseRequest{
		Letter: letter,
		Purge:  purge,
	}, &rsp); err != nil {
		return err
	}
	return rsp.Error.Err()
}

func (client *Client) ListDrives() ([]types.Drive, error) {
	rsp := drive.ListResponse{}
	if err := client.call(dosdevmgr.DriveService, drive.MethodList, drive.ListRequest{}, &rsp); err != nil {
		return nil, err
	}
	return rsp.Drives, rsp.Error.Err()
}

// Mask returns the letters whose device resolves to the same device as path
func (client *Client) Mask(path string) (dosdevices.Mask, error) {
	rsp := drive.MaskResponse{}
	if err := client.call(dosdevmgr.DriveService, drive.MethodMask, drive.MaskRequest{Path: path}, &rsp); err != nil {
		return 0, err
	}
	return dosdevices.Mask(rsp.Mask), nil
}
