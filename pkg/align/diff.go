package align

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/nationalarchives/ctd-nfs/pkg/annotate"
)

// charDiff aligns a and b character by character. Shared characters are kept
// as they are and every other character is wrapped as "(c?)". Within a
// replaced block the shorter side is listed first.
func charDiff(a, b string) annotate.AlignmentBuffer {
	ac, bc := strings.Split(a, ""), strings.Split(b, "")

	var out annotate.AlignmentBuffer
	mark := func(chars []string) {
		for _, c := range chars {
			out = append(out, annotate.Mark(c))
		}
	}

	for _, op := range difflib.NewMatcher(ac, bc).GetOpCodes() {
		switch op.Tag {
		case 'e':
			out = append(out, ac[op.I1:op.I2]...)
		case 'd':
			mark(ac[op.I1:op.I2])
		case 'i':
			mark(bc[op.J1:op.J2])
		case 'r':
			if op.J2-op.J1 < op.I2-op.I1 {
				mark(bc[op.J1:op.J2])
				mark(ac[op.I1:op.I2])
			} else {
				mark(ac[op.I1:op.I2])
				mark(bc[op.J1:op.J2])
			}
		}
	}
	return out
}
