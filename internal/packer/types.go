package packer

// Packer describes the behaviour required from a cut packer.
type Packer interface {
	Pack(values []int, binSize int) ([]*Bin, error)
}
