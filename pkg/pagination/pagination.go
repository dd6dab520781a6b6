package pagination

import (
	"net/url"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Defaults and limits for list endpoints
const (
	DefaultPage     = 1
	DefaultPageSize = 1000
	MaxPageSize     = 1000
)

// Params carries the pagination slice extracted from a query string
// together with the remaining key-value pairs, which are treated as an
// opaque filter and passed to the database verbatim.
type Params struct {
	Page     int
	PageSize int
	Filter   bson.M
}

// FromQuery separates page/pageSize from the rest of the query values.
// Malformed or out-of-range numbers fall back to the defaults.
func FromQuery(values url.Values) Params {
	p := Params{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Filter:   bson.M{},
	}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		switch key {
		case "page":
			if n, err := strconv.Atoi(vals[0]); err == nil && n >= 1 {
				p.Page = n
			}
		case "pageSize":
			if n, err := strconv.Atoi(vals[0]); err == nil && n >= 1 {
				p.PageSize = n
			}
		default:
			p.Filter[key] = vals[0]
		}
	}

	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	return p
}

// Skip returns the number of documents to skip for the current page.
func (p Params) Skip() int64 {
	return int64((p.Page - 1) * p.PageSize)
}

// Pages returns the total number of pages for a given item count
// (ceiling division).
func (p Params) Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	size := int64(p.PageSize)
	return int((total + size - 1) / size)
}

// FindOptions builds mongo find options applying skip and limit.
func (p Params) FindOptions() options.FindOptions {
	opts := options.FindOptions{}
	opts.SetSkip(p.Skip())
	opts.SetLimit(int64(p.PageSize))
	return opts
}
