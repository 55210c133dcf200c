package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupWithoutExporters(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestNewLogger(t *testing.T) {
	buff := bytes.NewBuffer(nil)

	quiet := NewLogger(buff, false, false)
	quiet.Debug("hidden")
	quiet.Info("shown", "n", 3)
	require.NotContains(t, buff.String(), "hidden")
	require.Contains(t, buff.String(), "INF shown n=3")

	buff.Reset()
	verbose := NewLogger(buff, true, false)
	verbose.Debug("details")
	require.Contains(t, buff.String(), "DBG details")
}
