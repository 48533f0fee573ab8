package assemble

import (
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/svcall/biosimd"
)

// reverseComplement computes the reverse complement of a DNA string.
func reverseComplement(seq string) string {
	buf := make([]byte, len(seq))
	biosimd.ReverseComp8NoValidate(buf, gunsafe.StringToBytes(seq))
	return gunsafe.BytesToString(buf)
}
