package windowing

import (
	"fmt"
	"io"
)

// verboseOut receives window diagnostics when non-nil.
var verboseOut io.Writer

// SetVerbose routes window diagnostics to w; nil turns them off.
func SetVerbose(w io.Writer) { verboseOut = w }

func vlogf(format string, args ...any) {
	if verboseOut != nil {
		fmt.Fprintf(verboseOut, "[windowing] "+format+"\n", args...)
	}
}
