// Package resilience groups the fault tolerance helpers of the labels service.
//
// The package supports:
//   - Circuit breakers for hub API calls and database access
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.HubAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callHub()
//	})
//
//	err := retry.WithBackoff(ctx, retry.HubAPIConfig(), func() error {
//	    return performOperation()
//	})
package resilience
