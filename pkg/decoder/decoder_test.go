package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		count int
		fail  bool
	}{
		{name: "Bare array", body: `[{"id":1},{"id":2}]`, count: 2},
		{name: "First key", body: `{"groups":[{"id":1}]}`, count: 1},
		{name: "Second key", body: `{"data":[{"id":1},{"id":2},{"id":3}]}`, count: 3},
		{name: "Null skipped", body: `{"groups":null,"data":[{"id":1}]}`, count: 1},
		{name: "No list", body: `{"message":"ok"}`, fail: true},
		{name: "Garbage", body: `not json`, fail: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			items, err := DecodeList[item]([]byte(test.body), "groups", "data")
			if test.fail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, test.count)
		})
	}
}

func TestDecodeObject(t *testing.T) {
	wrapped, err := DecodeObject[item]([]byte(`{"data":{"id":5,"name":"Family"}}`), "data")
	require.NoError(t, err)
	assert.Equal(t, item{ID: 5, Name: "Family"}, wrapped)

	bare, err := DecodeObject[item]([]byte(`{"id":6,"name":"Friends"}`), "data")
	require.NoError(t, err)
	assert.Equal(t, item{ID: 6, Name: "Friends"}, bare)

	_, err = DecodeObject[item]([]byte(`[]`), "data")
	assert.Error(t, err)
}
