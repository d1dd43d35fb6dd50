package gfw

import (
	"context"
	"net/url"
	"strconv"
	"time"

	screendom "trawlwatch/internal/services/screen/domain"
)

const eventsPageLimit = 100

// FishingEvents pages through /events for one vessel and window.
// Pagination contract: offset advances by the number of entries each page;
// the loop ends on an empty page or a missing nextOffset
func (c *Client) FishingEvents(
	ctx context.Context,
	vesselID string,
	start, end time.Time,
) ([]screendom.ActivityEvent, error) {
	var all []screendom.ActivityEvent
	offset := 0

	for {
		q := url.Values{}
		q.Set("vessels[0]", vesselID)
		q.Set("datasets[0]", eventsDataset)
		q.Set("start-date", start.UTC().Format("2006-01-02"))
		q.Set("end-date", end.UTC().Format("2006-01-02"))
		q.Set("limit", strconv.Itoa(eventsPageLimit))
		q.Set("offset", strconv.Itoa(offset))

		var page eventsResponse
		if err := c.getJSON(ctx, "/events", q, &page); err != nil {
			return nil, err
		}
		if len(page.Entries) == 0 {
			break
		}
		for _, e := range page.Entries {
			all = append(all, screendom.ActivityEvent{
				ID:    e.ID,
				Type:  e.Type,
				Start: e.Start,
				End:   e.End,
			})
		}
		offset += len(page.Entries)
		if page.NextOffset == nil {
			break
		}
	}

	c.log.Debug().Str("vessel_id", vesselID).Int("events", len(all)).Msg("events fetched")
	return all, nil
}
