package batch

import "fmt"

// idFormat yields ids like "CPND000001". The 6-digit zero-padded index is
// 1-based and part of the output contract.
const idFormat = "CPND%06d"

// SequentialIDs generates n compound ids continuing a global sequence:
// offset is the number of compounds that precede this batch, so
// SequentialIDs(0, 2) yields CPND000001, CPND000002 and
// SequentialIDs(100, 1) yields CPND000101.
func SequentialIDs(offset, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf(idFormat, offset+i+1)
	}
	return ids
}
