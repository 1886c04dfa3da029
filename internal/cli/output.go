package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/juju/ansiterm"
	"github.com/juju/errors"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

var (
	successColor = ansiterm.Foreground(ansiterm.Green)
	failureColor = ansiterm.Foreground(ansiterm.BrightRed)
)

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(errors.Annotate(err, "marshal output"))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

func newTabWriter(w io.Writer) *ansiterm.TabWriter {
	return ansiterm.NewTabWriter(w, 0, 1, 2, ' ', 0)
}

// resultJSON is the JSON form of a types.Result.
type resultJSON struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
	Code    int32  `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// report prints the result and turns a failure into a user error.
func report(w io.Writer, jsonMode bool, res types.Result, path string) error {
	if jsonMode {
		out := resultJSON{Outcome: res.Outcome.String(), Code: res.Code, Message: res.Message, Path: path}
		if !res.OK() {
			out.Reason = res.Reason.String()
		}
		if err := printJSON(w, out); err != nil {
			return err
		}
	} else {
		aw := ansiterm.NewWriter(w)
		if res.OK() {
			successColor.Fprintf(aw, "%s", res.Message)
		} else {
			failureColor.Fprintf(aw, "%s", res.Message)
			if res.Code != -1 {
				fmt.Fprintf(aw, " (0x%08X)", uint32(res.Code))
			}
		}
		fmt.Fprintln(aw)
	}
	if !res.OK() {
		return userError(errors.Errorf("%s failed: %s", res.Reason, res.Message))
	}
	return nil
}
