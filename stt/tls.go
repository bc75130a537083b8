package stt

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
)

// NewHTTPClient returns a client trusting the system roots plus the provider
// certificate at certPath (PEM or DER). An empty certPath uses system roots only.
func NewHTTPClient(certPath string, timeout time.Duration) (*http.Client, error) {
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if certPath != "" {
		data, err := os.ReadFile(certPath)
		if err != nil {
			return nil, errors.Wrapf(err, "read certificate %s", certPath)
		}
		if !pool.AppendCertsFromPEM(data) {
			cert, err := x509.ParseCertificate(data)
			if err != nil {
				return nil, errors.Wrapf(err, "certificate %s is neither PEM nor DER", certPath)
			}
			pool.AddCert(cert)
		}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}
	return &http.Client{Timeout: timeout, Transport: transport}, nil
}
