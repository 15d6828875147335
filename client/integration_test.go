package client_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tensord/client"
	"tensord/nn"
	"tensord/server"
	"tensord/tensor"
	"tensord/testutil"
	"tensord/testutil/testflags"
)

func TestExchange_EndToEnd(t *testing.T) {
	testflags.IntegrationTest(t)

	port := testutil.RandFreePort(t)
	listener := server.NewListener("127.0.0.1", port, nn.BuiltinOnes())
	go func() {
		if err := listener.Start(); err != nil {
			panic(err)
		}
	}()
	defer listener.Stop()

	addr := "127.0.0.1:" + strconv.Itoa(port)
	var result *tensor.Tensor
	var err error
	require.Eventually(t, func() bool {
		result, err = client.Exchange(context.Background(), addr, tensor.Eye(2))
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	expected, err := nn.BuiltinOnes().Forward(tensor.Eye(2))
	require.NoError(t, err)
	require.True(t, expected.AllClose(result))
}
