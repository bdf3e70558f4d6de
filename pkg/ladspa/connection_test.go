package ladspa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectAudio(t *testing.T) {
	buf := []Data{1, 2, 3, 4}
	c := Connect(NewPort("In", PortAudioInput).Build(), &buf[0])

	assert.Zero(t, c.View().Len())
	assert.Nil(t, c.Audio())

	c.View().Resize(4)
	assert.Equal(t, buf, c.Audio())

	c.View().Resize(2)
	assert.Equal(t, []Data{1, 2}, c.Audio())
	assert.Same(t, &buf[0], c.View().Base())
}

func TestAudioViewRedirect(t *testing.T) {
	host := []Data{1, 1}
	scratch := []Data{0, 0, 0}
	c := Connect(NewPort("Out", PortAudioOutput).Build(), &host[0])

	c.View().Redirect(&scratch[0], 3)
	out := c.AudioOut()
	out[2] = 5
	assert.Equal(t, Data(5), scratch[2])

	c.View().Redirect(&host[0], 2)
	assert.Equal(t, host, c.AudioOut())
}

func TestConnectControl(t *testing.T) {
	v := Data(0.5)
	in := Connect(NewPort("Gain", PortControlInput).Build(), &v)
	assert.Equal(t, Data(0.5), in.Control())
	assert.Nil(t, in.View())

	var meter Data
	out := Connect(NewPort("Level", PortControlOutput).Build(), &meter)
	out.SetControl(0.25)
	assert.Equal(t, Data(0.25), meter)

	unconnected := Connect(NewPort("Gain", PortControlInput).Build(), nil)
	assert.Zero(t, unconnected.Control())
}

func TestConnectionKindChecks(t *testing.T) {
	v := Data(1)
	audio := Connect(NewPort("In", PortAudioInput).Build(), &v)
	control := Connect(NewPort("Gain", PortControlInput).Build(), &v)

	assert.Panics(t, func() { audio.AudioOut() })
	assert.Panics(t, func() { audio.Control() })
	assert.Panics(t, func() { control.Audio() })
	assert.Panics(t, func() { control.SetControl(2) })
	assert.Panics(t, func() { Connect(Port{Name: "x", Kind: PortInvalid}, &v) })
}
