package buffer

// Buffer accumulates streamed bytes, letting its head be consumed piece by piece.
type Buffer struct {
	memory []byte
	begin  int
}

func New(initialSize int) Buffer {
	return Buffer{
		memory: make([]byte, 0, initialSize),
	}
}

// Append writes data after the unconsumed bytes. Consumed head is dropped before
// appending, therefore slices previously returned by Unconsumed may be overwritten.
func (b *Buffer) Append(elements []byte) {
	if b.begin > 0 {
		n := copy(b.memory, b.memory[b.begin:])
		b.memory = b.memory[:n]
		b.begin = 0
	}

	b.memory = append(b.memory, elements...)
}

// Unconsumed returns everything appended but not consumed yet.
func (b *Buffer) Unconsumed() []byte {
	return b.memory[b.begin:]
}

// Consume moves the head forward by n bytes.
func (b *Buffer) Consume(n int) {
	if n > b.Len() {
		n = b.Len()
	}

	b.begin += n
}

// Len returns the number of unconsumed bytes.
func (b *Buffer) Len() int {
	return len(b.memory) - b.begin
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.begin = 0
	b.memory = b.memory[:0]
}
