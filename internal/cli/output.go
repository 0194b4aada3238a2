package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mcoot/playerregistry/internal/api/response"
)

const dateLayout = "2006-01-02"

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Player:
		o.printPlayer(v)
	case []response.Player:
		o.printPlayers(v)
	case response.Health:
		_, _ = fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case int:
		_, _ = fmt.Fprintln(o.w, v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p response.Player) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 1, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	_, _ = fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	_, _ = fmt.Fprintf(tw, "Title:\t%s\n", p.Title)
	_, _ = fmt.Fprintf(tw, "Race:\t%s\n", p.Race)
	_, _ = fmt.Fprintf(tw, "Profession:\t%s\n", p.Profession)
	_, _ = fmt.Fprintf(tw, "Birthday:\t%s\n", p.BirthdayTime().Format(dateLayout))
	_, _ = fmt.Fprintf(tw, "Banned:\t%s\n", yesNo(p.Banned))
	_, _ = fmt.Fprintf(tw, "Experience:\t%d\n", p.Experience)
	_, _ = fmt.Fprintf(tw, "Level:\t%d (%d to next)\n", p.Level, p.UntilNextLevel)
	_ = tw.Flush()
}

func (o *Output) printPlayers(players []response.Player) {
	if len(players) == 0 {
		_, _ = fmt.Fprintln(o.w, "No players found")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTITLE\tRACE\tPROFESSION\tBIRTHDAY\tLEVEL\tEXPERIENCE\tBANNED")
	for _, p := range players {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			p.ID, p.Name, p.Title, p.Race, p.Profession,
			p.BirthdayTime().Format(dateLayout), p.Level, p.Experience, yesNo(p.Banned))
	}
	_ = tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
