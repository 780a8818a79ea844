package utils

import (
	"net"
	"testing"

	dosdevmgr "github.com/YLonely/dosdev-manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Device string
	Class  string
}

func TestPackRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	data, err := Pack(dosdevmgr.DriveService, "Allocate", sample{Device: "/dev/sr0", Class: "cdrom"})
	require.NoError(t, err)
	go SendRaw(client, data)

	st, err := ReceiveServiceType(server)
	require.NoError(t, err)
	assert.Equal(t, dosdevmgr.DriveService, st)

	var method string
	require.NoError(t, ReceiveObject(server, &method))
	assert.Equal(t, "Allocate", method)

	var got sample
	require.NoError(t, ReceiveObject(server, &got))
	assert.Equal(t, sample{Device: "/dev/sr0", Class: "cdrom"}, got)
}

func TestSendReceive(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go Send(client, []byte("hello"))
	data, err := Receive(server)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	go Send(client, nil)
	data, err = Receive(server)
	require.NoError(t, err)
	assert.Empty(t, data)
}
