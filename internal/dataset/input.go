package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadSMILES parses .smi input: one compound per line, optionally followed
// by a whitespace-separated id. Blank lines and lines starting with '#'
// are skipped.
//
// The returned ids slice is nil when no line carried an id (callers then
// let the orchestrator generate sequential ids). Mixing lines with and
// without ids is an input error.
func ReadSMILES(r io.Reader) (smiles, ids []string, err error) {
	sc := bufio.NewScanner(r)
	line := 0
	withID, withoutID := 0, 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		smiles = append(smiles, fields[0])
		if len(fields) > 1 {
			ids = append(ids, fields[1])
			withID++
		} else {
			withoutID++
		}
		if withID > 0 && withoutID > 0 {
			return nil, nil, fmt.Errorf("line %d: mixed lines with and without compound ids", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	return smiles, ids, nil
}

// ReadSMILESFile opens path and reads it with ReadSMILES.
func ReadSMILESFile(path string) (smiles, ids []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return ReadSMILES(f)
}
