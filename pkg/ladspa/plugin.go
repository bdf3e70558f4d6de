package ladspa

// Plugin is implemented by plugin authors. The framework calls it from the
// host's audio thread; Run receives the complete, port-number-ordered
// connection list and must not allocate.
type Plugin interface {
	Activate()
	Run(sampleCount int, ports []*PortConnection)
	Deactivate()
}

// Base provides no-op Activate and Deactivate for embedding.
type Base struct{}

func (Base) Activate()   {}
func (Base) Deactivate() {}
