package scenario

import (
	"net/http"

	"github.com/simplecom/storefront-smoke/internal/apiclient"
	"github.com/simplecom/storefront-smoke/internal/rules"
)

// Check is one HTTP smoke assertion.
type Check struct {
	Name string
	Run  func() error
}

// RunChecks runs every check in order.
func RunChecks(checks []Check) Results {
	results := make(Results, 0, len(checks))
	for _, c := range checks {
		results = append(results, run(c.Name, c.Run))
	}
	return results
}

// APIChecks returns the HTTP suite in run order.
func APIChecks(client apiclient.Client) []Check {
	return []Check{
		ListUsers(client),
		NotFoundOrUnauthorized(client),
	}
}

// ListUsers expects page 2 of the users listing to be non-empty, or a 401
// from a secured deployment.
func ListUsers(client apiclient.Client) Check {
	return Check{
		Name: "GET /users?page=2 lists users",
		Run: func() error {
			resp, err := client.ListUsers(2)
			if err != nil {
				return err
			}
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return nil
			case http.StatusOK:
				if resp.Body == nil || len(resp.Body.Data) == 0 {
					return Failf("expected a non-empty data array")
				}
				if !rules.IsValidListCount(resp.Body.PerPage) {
					return Failf("per_page %d outside 1..100", resp.Body.PerPage)
				}
				return nil
			default:
				return Failf("expected status 200 or 401, got %d", resp.StatusCode)
			}
		},
	}
}

// NotFoundOrUnauthorized expects a missing resource to be reported as 404,
// or 401 when auth is enforced.
func NotFoundOrUnauthorized(client apiclient.Client) Check {
	return Check{
		Name: "GET /unknown/23 is not found",
		Run: func() error {
			resp, err := client.GetUnknown(23)
			if err != nil {
				return err
			}
			if resp.StatusCode != http.StatusNotFound && resp.StatusCode != http.StatusUnauthorized {
				return Failf("expected status 404 or 401, got %d", resp.StatusCode)
			}
			return nil
		},
	}
}
