package resilience

import (
	"net/http"
	"time"
)

// HTTPClient wraps a pooled http.Client with circuit breaker
// protection, for adapters talking to flaky external sites.
type HTTPClient struct {
	client  *http.Client
	breaker *CircuitBreaker
}

// NewHTTPClient builds a pooled client. maxIdle bounds idle
// connections, timeout applies per request.
func NewHTTPClient(maxIdle int, timeout time.Duration, breaker *CircuitBreaker) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:        maxIdle,
		MaxIdleConnsPerHost: maxIdle,
		IdleConnTimeout:     90 * time.Second,
	}

	return &HTTPClient{
		client:  &http.Client{Transport: transport, Timeout: timeout},
		breaker: breaker,
	}
}

// Do executes the request through the circuit breaker. Responses with
// 5xx status count as failures.
func (hc *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response

	err := hc.breaker.Call(func() error {
		var callErr error
		resp, callErr = hc.client.Do(req)
		if callErr != nil {
			return callErr
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			status := resp.Status
			resp.Body.Close()
			resp = nil
			return &CircuitBreakerError{
				Message: "upstream returned " + status,
				State:   hc.breaker.State(),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Stats reports the breaker state for monitoring endpoints.
func (hc *HTTPClient) Stats() map[string]interface{} {
	return map[string]interface{}{
		"breaker_state": hc.breaker.State().String(),
	}
}
