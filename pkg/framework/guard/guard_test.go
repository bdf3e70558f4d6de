package guard

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	logging "github.com/justyntemme/ladspago/pkg/framework/debug"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })
	return &buf
}

func TestDo(t *testing.T) {
	t.Run("NormalReturn", func(t *testing.T) {
		buf := captureLog(t)
		ran := false

		ok := Do("activate", func() { ran = true })

		assert.True(t, ok)
		assert.True(t, ran)
		assert.Zero(t, buf.Len())
	})

	t.Run("PanicIsContained", func(t *testing.T) {
		buf := captureLog(t)

		ok := Do("run", func() { panic("out of tape") })

		assert.False(t, ok)
		assert.Contains(t, buf.String(), "plugin error in run: out of tape")
		assert.Contains(t, buf.String(), "op=run")
	})

	t.Run("ErrorPanic", func(t *testing.T) {
		buf := captureLog(t)

		ok := Do("deactivate", func() { panic(errors.New("closed twice")) })

		assert.False(t, ok)
		assert.Contains(t, buf.String(), "closed twice")
	})

	t.Run("RuntimeError", func(t *testing.T) {
		captureLog(t)
		var samples []float32

		ok := Do("run", func() { samples[4] = 1 })

		assert.False(t, ok)
	})

	t.Run("UsableAfterPanic", func(t *testing.T) {
		captureLog(t)
		assert.False(t, Do("run", func() { panic("first") }))

		calls := 0
		assert.True(t, Do("run", func() { calls++ }))
		assert.Equal(t, 1, calls)
	})
}

func TestValue(t *testing.T) {
	t.Run("Result", func(t *testing.T) {
		v := Value("describe", -1, func() int { return 7 })
		assert.Equal(t, 7, v)
	})

	t.Run("Fallback", func(t *testing.T) {
		buf := captureLog(t)

		v := Value("instantiate", "fallback", func() string { panic("no memory") })

		assert.Equal(t, "fallback", v)
		assert.Contains(t, buf.String(), "instantiate")
	})

	t.Run("NilFallback", func(t *testing.T) {
		captureLog(t)

		v := Value[*int]("describe", nil, func() *int { panic("bad index") })

		assert.Nil(t, v)
	})
}
