package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func TestDecodeAppliesOnlyPresentKeys(t *testing.T) {
	var s sample
	require.NoError(t, Decode([]byte(`{"name":"Ravi"}`), []string{"name", "phone"}, &s))
	require.NotNil(t, s.Name)
	assert.Equal(t, "Ravi", *s.Name)
	assert.Nil(t, s.Phone)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	var s sample
	err := Decode([]byte(`{"name":"R","role":"admin","id":"x"}`), []string{"name", "phone"}, &s)
	require.Error(t, err)
	assert.Equal(t, "unknown fields: id, role", err.Error())
}

func TestDecodeRejectsNonObject(t *testing.T) {
	var s sample
	assert.Error(t, Decode([]byte(`[1,2,3]`), []string{"name"}, &s))
	assert.Error(t, Decode([]byte(`not json`), []string{"name"}, &s))
}
