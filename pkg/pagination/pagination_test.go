package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQueryDefaults(t *testing.T) {
	p := FromQuery(url.Values{})

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1000, p.PageSize)
	assert.Equal(t, int64(0), p.Skip())
	assert.Empty(t, p.Filter)
}

func TestSkipMath(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		pageSize string
		wantSkip int64
	}{
		{"first page default size", "1", "1000", 0},
		{"third page of ten", "3", "10", 20},
		{"second page of fifty", "2", "50", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromQuery(url.Values{"page": {tt.page}, "pageSize": {tt.pageSize}})
			assert.Equal(t, tt.wantSkip, p.Skip())
		})
	}
}

func TestFromQueryMalformedFallsBack(t *testing.T) {
	p := FromQuery(url.Values{"page": {"abc"}, "pageSize": {"-5"}})

	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
}

func TestFromQueryClampsPageSize(t *testing.T) {
	p := FromQuery(url.Values{"pageSize": {"99999"}})

	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestFilterPassThrough(t *testing.T) {
	p := FromQuery(url.Values{
		"page":      {"2"},
		"pageSize":  {"10"},
		"key":       {"home.title"},
		"projectId": {"abc123"},
	})

	assert.Equal(t, 2, p.Page)
	assert.Len(t, p.Filter, 2)
	assert.Equal(t, "home.title", p.Filter["key"])
	assert.Equal(t, "abc123", p.Filter["projectId"])
	assert.NotContains(t, p.Filter, "page")
	assert.NotContains(t, p.Filter, "pageSize")
}

func TestPagesCeilingDivision(t *testing.T) {
	p := Params{PageSize: 10}

	assert.Equal(t, 0, p.Pages(0))
	assert.Equal(t, 1, p.Pages(1))
	assert.Equal(t, 1, p.Pages(10))
	assert.Equal(t, 2, p.Pages(11))
	assert.Equal(t, 10, p.Pages(95))
}
