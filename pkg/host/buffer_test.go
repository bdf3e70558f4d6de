package host

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justyntemme/ladspago/pkg/ladspa"
)

func TestBuffer(t *testing.T) {
	b := NewBuffer(4)
	defer b.Free()

	assert.Equal(t, 4, b.Len())
	assert.Equal(t, []ladspa.Data{0, 0, 0, 0}, b.Samples())

	copy(b.Samples(), []ladspa.Data{1, 2, 3, 4})
	assert.Equal(t, []ladspa.Data{1, 2, 3, 4}, b.Samples())

	b.Free()
	assert.Nil(t, b.Samples())
	assert.NotPanics(t, b.Free)
}

func TestControl(t *testing.T) {
	c := NewControl(0.5)
	defer c.Free()

	assert.Equal(t, ladspa.Data(0.5), c.Value())
	c.Set(2)
	assert.Equal(t, ladspa.Data(2), c.Value())
}
