// Package pages renders the HTML views.
package pages

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/query"
	"github.com/mcoot/playerregistry/internal/web/templates/layout"
)

// BirthdayFormat is how birthdays are shown in tables
const BirthdayFormat = "2006-01-02"

// PlayersData is the data for the player table page
type PlayersData struct {
	layout.PageData
	Players []*model.Player
	// Query is the raw request query, echoed back into the filter form
	Query url.Values
	Page  query.Page
	// Total is the number of players matching the filters across all pages
	Total int
	Error string
}

// Players renders the filterable player table
func Players(data PlayersData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1>Players</h1>`)
		writeFilters(&b, data.Query)

		if data.Error != "" {
			fmt.Fprintf(&b, `<p class="error" id="query-error">%s</p>`, templ.EscapeString(data.Error))
		} else {
			fmt.Fprintf(&b, `<p id="summary">Showing %d of %d players</p>`, len(data.Players), data.Total)
		}

		writeTable(&b, data.Players)
		writePager(&b, data)

		_, err := io.WriteString(w, b.String())
		return err
	}))
}

func writeFilters(b *strings.Builder, q url.Values) {
	b.WriteString(`<form id="filters" method="get" action="/ui/players">`)
	textInput(b, "name", "Name", q.Get("name"))
	textInput(b, "title", "Title", q.Get("title"))

	races := make([]string, len(model.Races))
	for i, r := range model.Races {
		races[i] = string(r)
	}
	selectInput(b, "race", "Race", races, strings.ToUpper(q.Get("race")))

	professions := make([]string, len(model.Professions))
	for i, p := range model.Professions {
		professions[i] = string(p)
	}
	selectInput(b, "profession", "Profession", professions, strings.ToUpper(q.Get("profession")))
	selectInput(b, "banned", "Banned", []string{"true", "false"}, q.Get("banned"))

	textInput(b, "minLevel", "Min level", q.Get("minLevel"))
	textInput(b, "maxLevel", "Max level", q.Get("maxLevel"))

	orders := []string{
		string(query.OrderID), string(query.OrderName), string(query.OrderExperience),
		string(query.OrderBirthday), string(query.OrderLevel),
	}
	selectInput(b, "order", "Order", orders, strings.ToUpper(q.Get("order")))
	textInput(b, "pageSize", "Page size", q.Get("pageSize"))

	b.WriteString(`<button type="submit">Filter</button></form>`)
}

func textInput(b *strings.Builder, name, label, value string) {
	fmt.Fprintf(b, `<label>%s <input type="text" name="%s" value="%s"></label>`,
		label, name, templ.EscapeString(value))
}

func selectInput(b *strings.Builder, name, label string, options []string, selected string) {
	fmt.Fprintf(b, `<label>%s <select name="%s"><option value="">Any</option>`, label, name)
	for _, opt := range options {
		attr := ""
		if opt == selected {
			attr = " selected"
		}
		fmt.Fprintf(b, `<option value="%s"%s>%s</option>`, opt, attr, opt)
	}
	b.WriteString(`</select></label>`)
}

func writeTable(b *strings.Builder, players []*model.Player) {
	b.WriteString(`<table id="players"><thead><tr>` +
		`<th>ID</th><th>Name</th><th>Title</th><th>Race</th><th>Profession</th>` +
		`<th>Birthday</th><th>Level</th><th>Experience</th><th>Banned</th>` +
		`</tr></thead><tbody>`)

	if len(players) == 0 {
		b.WriteString(`<tr class="empty"><td colspan="9">No players match</td></tr>`)
	}
	for _, p := range players {
		class := "player"
		if p.Banned {
			class += " banned"
		}
		banned := "no"
		if p.Banned {
			banned = "yes"
		}
		fmt.Fprintf(b, `<tr class="%s" data-id="%d">`, class, p.ID)
		fmt.Fprintf(b, `<td class="id">%d</td>`, p.ID)
		fmt.Fprintf(b, `<td class="name">%s</td>`, templ.EscapeString(p.Name))
		fmt.Fprintf(b, `<td class="title">%s</td>`, templ.EscapeString(p.Title))
		fmt.Fprintf(b, `<td class="race">%s</td>`, templ.EscapeString(string(p.Race)))
		fmt.Fprintf(b, `<td class="profession">%s</td>`, templ.EscapeString(string(p.Profession)))
		fmt.Fprintf(b, `<td class="birthday">%s</td>`, p.Birthday.UTC().Format(BirthdayFormat))
		fmt.Fprintf(b, `<td class="level" title="%d to next level">%d</td>`, p.UntilNextLevel, p.Level)
		fmt.Fprintf(b, `<td class="experience">%d</td>`, p.Experience)
		fmt.Fprintf(b, `<td class="banned">%s</td>`, banned)
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
}

func writePager(b *strings.Builder, data PlayersData) {
	if data.Error != "" {
		return
	}
	b.WriteString(`<nav class="pager">`)
	if data.Page.Number > 0 {
		fmt.Fprintf(b, `<a id="prev" href="%s">Previous</a> `, templ.EscapeString(pageURL(data.Query, data.Page.Number-1)))
	}
	fmt.Fprintf(b, `<span id="page-number">Page %d</span>`, data.Page.Number+1)
	if data.Page.Size > 0 && (data.Page.Number+1)*data.Page.Size < data.Total {
		fmt.Fprintf(b, ` <a id="next" href="%s">Next</a>`, templ.EscapeString(pageURL(data.Query, data.Page.Number+1)))
	}
	b.WriteString(`</nav>`)
}

func pageURL(q url.Values, number int) string {
	next := url.Values{}
	for k, v := range q {
		if len(v) > 0 && v[0] != "" {
			next.Set(k, v[0])
		}
	}
	next.Set("pageNumber", strconv.Itoa(number))
	return "/ui/players?" + next.Encode()
}
