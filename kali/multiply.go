package kali

// Multiply computes a·b on a fresh crossbar sized for width-bit operands.
func Multiply(a, b uint64, width int, opts ...PipelineOption) (*Result, error) {
	p, err := NewPipeline(width, opts...)
	if err != nil {
		return nil, err
	}
	return p.Run(a, b)
}
