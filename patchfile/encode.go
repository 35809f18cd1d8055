package patchfile

import (
	"encoding/hex"
	"fmt"
	"io"
)

// Encode writes doc to w in the patch text format, header first, one data
// line per entry.
func Encode(w io.Writer, doc *Document) error {
	_, err := fmt.Fprintf(w, "# binfiddle patch file\n"+
		"# source: %s\n"+
		"# target: %s\n"+
		"# format: OFFSET:OLD_HEX:NEW_HEX\n"+
		"# differences: %d\n"+
		"#\n",
		doc.Source, doc.Target, len(doc.Entries))
	if err != nil {
		return err
	}
	for i := range doc.Entries {
		e := &doc.Entries[i]
		_, err := fmt.Fprintf(w, "0x%08x:%s:%s\n",
			e.Offset, hex.EncodeToString(e.Old), hex.EncodeToString(e.New))
		if err != nil {
			return err
		}
	}
	return nil
}
