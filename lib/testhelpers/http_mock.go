package testhelpers

import (
	"net/http"

	"github.com/jarcoal/httpmock"
)

// SetupHTTPMock initializes httpmock, activates it, and returns a cleanup function.
// This ensures consistent setup/teardown across tests.
func SetupHTTPMock() func() {
	httpmock.Activate()
	return func() {
		httpmock.DeactivateAndReset()
	}
}

// SetupHTTPMockForClient initializes httpmock for a custom http.Client and returns a cleanup function.
func SetupHTTPMockForClient(client *http.Client) func() {
	httpmock.ActivateNonDefault(client)
	return func() {
		httpmock.DeactivateAndReset()
	}
}

// MockWordlistDownload registers GET and HEAD responders serving body at url.
func MockWordlistDownload(url, body string) {
	httpmock.RegisterResponder(http.MethodHead, url, httpmock.NewStringResponder(http.StatusOK, ""))
	httpmock.RegisterResponder(http.MethodGet, url, httpmock.NewStringResponder(http.StatusOK, body))
}

// MockWordlistMissing registers a 404 for url.
func MockWordlistMissing(url string) {
	httpmock.RegisterResponder(http.MethodHead, url, httpmock.NewStringResponder(http.StatusNotFound, ""))
	httpmock.RegisterResponder(http.MethodGet, url, httpmock.NewStringResponder(http.StatusNotFound, "not found"))
}
