package display

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyPrintJSON writes v as indented JSON
func PrettyPrintJSON(out io.Writer, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "%sError formatting JSON: %s%s\n", Red, err.Error(), Reset)
		return
	}
	fmt.Fprintln(out, string(data))
}
