package gfw

import (
	"context"
	"fmt"
	"net/url"

	resolvedom "trawlwatch/internal/services/resolve/domain"
)

// Search strategies implementing resolve/domain.RegistryPort.
//
// Success is a 2xx status plus a non-empty entries array; an empty array or
// a lookup fault both surface as (zero, false, ...) so the cascade can move
// on. The first entry of a matching response wins.

// searchQuery builds the shared dataset and include params
func searchQuery() url.Values {
	q := url.Values{}
	q.Set("datasets[0]", identityDataset)
	q.Set("includes[0]", "OWNERSHIP")
	q.Set("includes[1]", "AUTHORIZATIONS")
	q.Set("includes[2]", "MATCH_CRITERIA")
	return q
}

// runSearch issues one /vessels/search call and canonicalizes the first hit
func (c *Client) runSearch(ctx context.Context, q url.Values) (resolvedom.Record, bool, error) {
	var resp searchResponse
	if err := c.getJSON(ctx, "/vessels/search", q, &resp); err != nil {
		return resolvedom.Record{}, false, err
	}
	if len(resp.Entries) == 0 {
		return resolvedom.Record{}, false, nil
	}
	return canonicalize(resp.Entries[0]), true, nil
}

// SearchCombined requires both the primary id and the name to match exactly
func (c *Client) SearchCombined(ctx context.Context, primaryID, name string) (resolvedom.Record, bool, error) {
	if primaryID == "" || name == "" {
		return resolvedom.Record{}, false, nil
	}
	q := searchQuery()
	q.Set("where", fmt.Sprintf(`(imo = %q AND shipname = %q)`, primaryID, name))
	return c.runSearch(ctx, q)
}

// SearchAdvanced tries exact primary id, then exact name, then partial name.
// A faulted sub-query does not stop the later sub-queries; the last fault is
// reported only when every sub-query came up empty
func (c *Client) SearchAdvanced(ctx context.Context, primaryID, name string) (resolvedom.Record, bool, error) {
	var wheres []string
	if primaryID != "" {
		wheres = append(wheres, fmt.Sprintf(`imo = %q`, primaryID))
	}
	if name != "" {
		wheres = append(wheres,
			fmt.Sprintf(`shipname = %q`, name),
			fmt.Sprintf(`shipname LIKE "%%%s%%"`, name))
	}

	var lastErr error
	for _, w := range wheres {
		q := searchQuery()
		q.Set("where", w)
		rec, ok, err := c.runSearch(ctx, q)
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return rec, true, nil
		}
	}
	return resolvedom.Record{}, false, lastErr
}

// SearchBasic issues free-text queries: primary id first, then name
func (c *Client) SearchBasic(ctx context.Context, primaryID, name string) (resolvedom.Record, bool, error) {
	var lastErr error
	for _, query := range []string{primaryID, name} {
		if query == "" {
			continue
		}
		q := searchQuery()
		q.Set("query", query)
		rec, ok, err := c.runSearch(ctx, q)
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return rec, true, nil
		}
	}
	return resolvedom.Record{}, false, lastErr
}
