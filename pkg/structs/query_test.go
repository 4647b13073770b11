package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuerySanitize(t *testing.T) {
	cases := []struct {
		Name   string
		Given  *Query
		Expect *Query
	}{
		{"Defaults", &Query{}, &Query{Limit: queryLimitDefault}},
		{"NegativeOffset", &Query{Offset: -5}, &Query{Limit: queryLimitDefault}},
		{"LimitCapped", &Query{Limit: queryLimitMax * 2}, &Query{Limit: queryLimitMax}},
		{"EmptyFiltersNiled", &Query{JobIDs: []int64{}, Statuses: []Status{}}, &Query{Limit: queryLimitDefault}},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			c.Given.Sanitize()

			assert.Equal(t, c.Expect, c.Given)
		})
	}
}

func TestQueryMatches(t *testing.T) {
	job := &Job{ID: 3, Status: RUNNING}

	cases := []struct {
		Name   string
		Given  *Query
		Expect bool
	}{
		{"NoFilters", &Query{}, true},
		{"IDMatch", &Query{JobIDs: []int64{1, 3}}, true},
		{"IDMiss", &Query{JobIDs: []int64{1, 2}}, false},
		{"StatusMatch", &Query{Statuses: []Status{RUNNING}}, true},
		{"StatusMiss", &Query{Statuses: []Status{PENDING}}, false},
		{"BothMustMatch", &Query{JobIDs: []int64{3}, Statuses: []Status{PENDING}}, false},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, c.Given.Matches(job))
		})
	}
}
