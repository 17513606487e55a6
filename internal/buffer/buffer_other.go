//go:build !linux

package buffer

func open(name string) (*Buffer, error) {
	return openTemp(name)
}
