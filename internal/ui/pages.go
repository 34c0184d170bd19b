package ui

import (
	"fmt"
	"strconv"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"sqlsplit/internal/domain"
	"sqlsplit/internal/service"
)

// maxDisplayRows bounds the rows rendered in the results table.
const maxDisplayRows = 200

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 0; color: #1f2328; background: #f6f8fa; }
.layout { max-width: 1100px; margin: 0 auto; padding: 1.5rem; }
.card { background: #fff; border: 1px solid #d0d7de; border-radius: 6px; padding: 1rem; margin-bottom: 1rem; }
.muted { color: #656d76; }
.error { border-color: #cf222e; color: #cf222e; }
textarea { width: 100%; font-family: ui-monospace, monospace; box-sizing: border-box; }
pre { white-space: pre-wrap; word-break: break-word; margin: 0; }
.stmt { display: flex; gap: .75rem; align-items: flex-start; padding: .5rem 0; border-top: 1px solid #eaeef2; }
.stmt.selected { background: #ddf4ff; }
.stmt pre { flex: 1; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #d0d7de; padding: .25rem .5rem; text-align: left; font-family: ui-monospace, monospace; }
.table-wrap { overflow-x: auto; }
`

func page(title string, body ...gomponents.Node) gomponents.Node {
	return html.Doctype(html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(title+" | sqlsplit")),
			html.StyleEl(gomponents.Raw(stylesheet)),
		),
		html.Body(html.Main(html.Class("layout"), gomponents.Group(body))),
	))
}

func errorPage(title, message string) gomponents.Node {
	return page(title,
		html.H1(gomponents.Text(title)),
		html.P(gomponents.Text(message)),
		html.P(html.A(html.Href("/ui"), gomponents.Text("Back to the workbench"))),
	)
}

func workbenchPage(s workbenchState, token func(action string) gomponents.Node) gomponents.Node {
	return page("Workbench",
		html.H1(gomponents.Text("SQL decomposition")),
		scriptForm(s, token),
		gomponents.If(s.Error != "", html.Div(
			html.Class("card error"),
			html.H2(gomponents.Text("Error")),
			html.Pre(gomponents.Text(s.Error)),
		)),
		gomponents.Iff(s.Result != nil, func() gomponents.Node { return statementList(s, token) }),
		gomponents.If(s.RunError != "", html.Div(
			html.Class("card error"),
			html.H2(gomponents.Text("Query Error")),
			html.Pre(gomponents.Text(s.RunError)),
		)),
		gomponents.Iff(s.Rows != nil, func() gomponents.Node { return resultsTable(s.Rows) }),
	)
}

func scriptForm(s workbenchState, token func(action string) gomponents.Node) gomponents.Node {
	return html.Form(
		html.Class("card"),
		html.Method("post"),
		html.Action("/ui/decompose"),
		token(actionDecompose),
		html.Label(html.For("script"), gomponents.Text("SQL script")),
		html.Textarea(html.ID("script"), html.Name("script"), html.Rows("12"), gomponents.Text(s.Script)),
		html.P(
			html.Label(html.For("dialect"), gomponents.Text("Dialect ")),
			html.Select(html.ID("dialect"), html.Name("dialect"),
				gomponents.Map(dialectNames(), func(d string) gomponents.Node {
					return option(d, s.Dialect)
				}),
			),
			gomponents.Text(" "),
			html.Button(html.Type("submit"), gomponents.Text("Decompose")),
		),
	)
}

func statementList(s workbenchState, token func(action string) gomponents.Node) gomponents.Node {
	res := s.Result
	summary := fmt.Sprintf("%d statement(s), %d WITH clause(s), dialect %s", len(res.Statements), len(res.Withs), res.Dialect)
	if len(res.Statements) == 0 {
		return html.Div(html.Class("card"),
			html.H2(gomponents.Text("Statements")),
			html.P(html.Class("muted"), gomponents.Text("No SELECT statements found. "+summary)),
		)
	}

	items := make([]gomponents.Node, len(res.Statements))
	for i, st := range res.Statements {
		class := "stmt"
		if i == s.Selected {
			class += " selected"
		}
		items[i] = html.Div(html.Class(class),
			html.Span(html.Class("muted"), gomponents.Text(strconv.Itoa(i+1)+".")),
			html.Pre(gomponents.Text(st.Runnable)),
			gomponents.If(s.CanRun, html.Button(
				html.Type("submit"), html.Name("index"), html.Value(strconv.Itoa(i)),
				gomponents.Text("Run"),
			)),
		)
	}

	return html.Form(
		html.Class("card"),
		html.Method("post"),
		html.Action("/ui/run"),
		token(actionRun),
		html.Input(html.Type("hidden"), html.Name("script"), html.Value(s.Script)),
		html.Input(html.Type("hidden"), html.Name("dialect"), html.Value(s.Dialect)),
		html.H2(gomponents.Text("Statements")),
		html.P(html.Class("muted"), gomponents.Text(summary)),
		gomponents.Iff(s.CanRun, func() gomponents.Node { return parameterFields(s) }),
		gomponents.If(!s.CanRun, html.P(html.Class("muted"),
			gomponents.Text("Statement execution is disabled: no database is configured."))),
		gomponents.Group(items),
	)
}

func parameterFields(s workbenchState) gomponents.Node {
	patterns := domain.ParameterPatterns()
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = string(p)
	}
	return html.Div(
		html.Label(html.For("params"), gomponents.Text("Parameters (one name=value per line)")),
		html.Textarea(html.ID("params"), html.Name("params"), html.Rows("3"), gomponents.Text(s.Params)),
		html.P(
			html.Label(html.For("pattern"), gomponents.Text("Placeholder style ")),
			html.Select(html.ID("pattern"), html.Name("pattern"),
				gomponents.Map(names, func(p string) gomponents.Node { return option(p, s.Pattern) }),
			),
		),
	)
}

func resultsTable(res *service.QueryResult) gomponents.Node {
	header := make([]gomponents.Node, len(res.Columns))
	for i, c := range res.Columns {
		header[i] = html.Th(gomponents.Text(c.Name))
	}

	display := res.Rows
	if len(display) > maxDisplayRows {
		display = display[:maxDisplayRows]
	}
	rows := make([]gomponents.Node, len(display))
	for i, row := range display {
		cells := make([]gomponents.Node, len(res.Columns))
		for j, c := range res.Columns {
			v, ok := row[c.Name]
			if !ok {
				v = "(unsupported type)"
			}
			cells[j] = html.Td(gomponents.Text(v))
		}
		rows[i] = html.Tr(gomponents.Group(cells))
	}

	meta := fmt.Sprintf("%d row(s)", res.RowCount)
	if len(display) < len(res.Rows) {
		meta = fmt.Sprintf("%d row(s), showing first %d", res.RowCount, maxDisplayRows)
	}
	if res.Truncated {
		meta += ", result truncated by the server row limit"
	}

	return html.Div(
		html.Class("card table-wrap"),
		html.H2(gomponents.Text("Results")),
		html.P(html.Class("muted"), gomponents.Text(meta)),
		html.Pre(html.Class("muted"), gomponents.Text(res.SQL)),
		html.Table(
			html.THead(html.Tr(gomponents.Group(header))),
			html.TBody(gomponents.Group(rows)),
		),
	)
}

func option(value, selected string) gomponents.Node {
	return html.Option(html.Value(value), gomponents.If(value == selected, html.Selected()), gomponents.Text(value))
}
