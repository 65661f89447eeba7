package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Name  *string `json:"name,omitempty"`
	Count int     `json:"count,omitempty"`
}

func TestJSON(t *testing.T) {
	var c JSON
	assert.Equal(t, "json", c.Name())

	name := "bob"
	data, err := c.Marshal(&message{Name: &name, Count: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"bob","count":2}`, string(data))

	var out message
	require.NoError(t, c.Unmarshal(data, &out))
	require.NotNil(t, out.Name)
	assert.Equal(t, "bob", *out.Name)

	var empty message
	assert.NoError(t, c.Unmarshal(nil, &empty))
	assert.Nil(t, empty.Name)

	assert.Error(t, c.Unmarshal([]byte(`{"count":"x"}`), &out))
}
