package restyutil

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatHeadersRedactsCredentials(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer secret-token")
	headers.Set("Accept", "application/json")
	headers.Add("Set-Cookie", "auth_token=abc")

	formatted := formatHeaders(headers)
	require.NotContains(t, formatted, "secret-token")
	require.NotContains(t, formatted, "auth_token")
	require.Equal(t, "Accept: application/json\nAuthorization: <redacted>\nSet-Cookie: <redacted>", formatted)
}
