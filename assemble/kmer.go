package assemble

// kmerizer scans a sequence for overlapping kmers of a fixed size, in a
// stateful Reset/Scan/Get idiom. Kmers are plain substrings rather than
// packed 2-bit words: de Bruijn k is not bounded to 32 bases.
type kmerizer struct {
	size int
	seq  string
	pos  int
	cur  string
}

func newKmerizer(size int) *kmerizer {
	return &kmerizer{size: size}
}

// Reset starts scanning seq from the beginning.
func (k *kmerizer) Reset(seq string) {
	k.seq = seq
	k.pos = 0
}

// Scan advances to the next kmer, returning false once the sequence is
// exhausted.
func (k *kmerizer) Scan() bool {
	if k.pos+k.size > len(k.seq) {
		return false
	}
	k.cur = k.seq[k.pos : k.pos+k.size]
	k.pos++
	return true
}

// Get returns the kmer at the current scan position.
func (k *kmerizer) Get() string { return k.cur }

// kmers returns every overlapping substring of s with the given length, in
// order of occurrence.
func kmers(s string, size int) []string {
	if size <= 0 || size > len(s) {
		return nil
	}
	out := make([]string, 0, len(s)-size+1)
	km := newKmerizer(size)
	km.Reset(s)
	for km.Scan() {
		out = append(out, km.Get())
	}
	return out
}
